package question

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Record is a single question/answer pair extracted from a study document.
// QuestionText and AnswerText hold the document wording verbatim; AnswerValue
// and AnswerOption are derived at build time and only used for grading.
type Record struct {
	Qnum         int     `json:"qnum" yaml:"qnum"`
	QuestionText string  `json:"question_text" yaml:"question_text"`
	AnswerText   string  `json:"answer_text" yaml:"answer_text"`
	AnswerValue  *string `json:"answer_value,omitempty" yaml:"answer_value,omitempty"`
	AnswerOption *string `json:"answer_option,omitempty" yaml:"answer_option,omitempty"`
}

// Value returns the derived answer value or "" when unset.
func (r Record) Value() string {
	if r.AnswerValue == nil {
		return ""
	}
	return *r.AnswerValue
}

// Option returns the derived option letter or "" when unset.
func (r Record) Option() string {
	if r.AnswerOption == nil {
		return ""
	}
	return *r.AnswerOption
}

// ExportYAML writes records as a YAML sequence for manual review of an import.
func ExportYAML(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
