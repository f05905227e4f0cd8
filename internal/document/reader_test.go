package document

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Question 1 of 1</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Pick </w:t></w:r><w:r><w:t>one</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>A</w:t><w:tab/><w:t>- Yes   </w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>[+] Answer&gt; the correct answer is Yes (A)</w:t></w:r></w:p>
</w:body>
</w:document>`

func writeDocx(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(wordBodyPart)
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReadLinesDocx(t *testing.T) {
	lines, err := ReadLines(writeDocx(t, docxBody))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Question 1 of 1",
		"Pick one",
		"A\t- Yes",
		"",
		"[+] Answer> the correct answer is Yes (A)",
	}, lines)

	recs, err := Parse(lines)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A", recs[0].Option())
}

func TestReadLinesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte("Question 2 of 2  \r\n  indented\t\r\n[+] Answer> ok\n"), 0o600))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Question 2 of 2", "  indented", "[+] Answer> ok"}, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestReadLinesDocxWithoutBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("docProps/core.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ReadLines(path)
	assert.Error(t, err)
}

const textBoxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"
 xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
 xmlns:v="urn:schemas-microsoft-com:vml">
<w:body>
<w:p><w:r><w:t>Question 1 of 2</w:t></w:r></w:p>
<w:p>
 <w:r><w:t xml:space="preserve">Which layer? </w:t></w:r>
 <w:r><mc:AlternateContent>
  <mc:Choice Requires="wps"><w:drawing><wps:txbx><w:txbxContent>
   <w:p><w:r><w:t>BOX</w:t></w:r></w:p>
  </w:txbxContent></wps:txbx></w:drawing></mc:Choice>
  <mc:Fallback><w:pict><v:textbox><w:txbxContent>
   <w:p><w:r><w:t>BOX</w:t></w:r></w:p>
  </w:txbxContent></v:textbox></w:pict></mc:Fallback>
 </mc:AlternateContent></w:r>
 <w:r><w:t>(pick one)</w:t></w:r>
</w:p>
<w:p><w:r><w:t>[+] Answer&gt; the correct answer is Data Link</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestReadLinesDocxKeepsParagraphAroundTextBox(t *testing.T) {
	lines, err := ReadLines(writeDocx(t, textBoxBody))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Question 1 of 2",
		"Which layer? (pick one)",
		"[+] Answer> the correct answer is Data Link",
	}, lines)
}

func TestReadLinesTrimsUnicodeTrailingSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nbsp.txt")
	require.NoError(t, os.WriteFile(path, []byte("Question 1 of 1\u00a0\u00a0\n\u00a0lead kept\u2003\n"), 0o600))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Question 1 of 1", "\u00a0lead kept"}, lines)

	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		"<w:p><w:r><w:t xml:space=\"preserve\">Prompt\u00a0</w:t></w:r></w:p></w:body></w:document>"
	lines, err = ReadLines(writeDocx(t, body))
	require.NoError(t, err)
	assert.Equal(t, []string{"Prompt"}, lines)
}
