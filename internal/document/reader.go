package document

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const wordBodyPart = "word/document.xml"

// ReadLines returns the paragraph lines of a study document, each with
// trailing whitespace removed. .docx files are read paragraph by paragraph;
// anything else is treated as plain text.
func ReadLines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return readDocx(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	return readText(f)
}

func readText(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, trimRight(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return lines, nil
}

func readDocx(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != wordBodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", wordBodyPart, err)
		}
		defer rc.Close()
		return readDocxBody(rc)
	}
	return nil, fmt.Errorf("docx %s has no %s", path, wordBodyPart)
}

// readDocxBody collects top-level body paragraphs from WordprocessingML.
// Paragraphs nested in tables are skipped. Paragraphs nested in another
// paragraph (text boxes, including their VML fallback copy) contribute nothing,
// and the enclosing paragraph keeps its own text. Tab stops declared in
// paragraph properties are ignored since only run content counts.
func readDocxBody(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines    []string
		buf      strings.Builder
		inPara   bool
		inRun    bool
		inText   bool
		tblDepth int
		pDepth   int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				continue
			case "p":
				pDepth++
				if pDepth == 1 && tblDepth == 0 {
					inPara = true
					buf.Reset()
				}
				continue
			}
			if !inPara || pDepth != 1 {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun = true
			case "t":
				inText = inRun
			case "tab":
				if inRun {
					buf.WriteByte('\t')
				}
			case "br", "cr":
				if inRun {
					buf.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
				continue
			case "p":
				if pDepth == 1 && inPara {
					lines = append(lines, trimRight(buf.String()))
					inPara = false
					inRun = false
					inText = false
				}
				pDepth--
				continue
			}
			if pDepth != 1 {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && pDepth == 1 {
				buf.Write(t)
			}
		}
	}
	return lines, nil
}

// trimRight drops trailing whitespace, Unicode spaces such as NBSP included.
func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
