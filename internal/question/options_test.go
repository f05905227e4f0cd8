package question

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExtractOptions(t *testing.T) {
	text := "Which device forwards frames?\n" +
		"A - Hub\n" +
		"  B – Switch  \n" +
		"C-Router\n" +
		"d - lowercase is not an option\n" +
		"Not - an option either"

	assert.Equal(t, []Option{
		{Letter: "A", Text: "Hub"},
		{Letter: "B", Text: "Switch"},
		{Letter: "C", Text: "Router"},
	}, ExtractOptions(text))
}

func TestExtractOptionsNone(t *testing.T) {
	assert.Nil(t, ExtractOptions("What is the default port for HTTPS?"))
	assert.Nil(t, ExtractOptions(""))
}

func TestRecordAccessors(t *testing.T) {
	v, o := "DHCP", "C"
	r := Record{AnswerValue: &v, AnswerOption: &o}
	assert.Equal(t, "DHCP", r.Value())
	assert.Equal(t, "C", r.Option())

	assert.Empty(t, Record{}.Value())
	assert.Empty(t, Record{}.Option())
}

func TestExportYAMLKeepsVerbatimText(t *testing.T) {
	v := "Frames"
	records := []Record{
		{Qnum: 3, QuestionText: "  What does a switch forward?", AnswerText: "\nThe correct answer is Frames", AnswerValue: &v},
		{Qnum: 4, QuestionText: "Prompt", AnswerText: "free text"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, records))
	assert.Contains(t, buf.String(), "qnum: 3")
	assert.NotContains(t, buf.String(), "answer_option")

	var decoded []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
}
