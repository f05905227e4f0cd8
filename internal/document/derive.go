package document

import (
	"regexp"
	"strings"
)

var (
	correctAnswerPattern = regexp.MustCompile(`(?i)the correct answer is\s+(.*)$`)
	// "Frames (C)"
	letterKeyPattern = regexp.MustCompile(`^(.*)\s+\(([A-Z])\)\s*$`)
	// "Social Engineering (Social Engineering)"
	parentheticalPattern = regexp.MustCompile(`^(.*)\s+\((.*)\)\s*$`)
)

// DeriveKeys scans answer lines for the first "the correct answer is" phrase
// and derives the grading value and, when present, the option letter. Both
// results are nil when no line carries the phrase.
func DeriveKeys(answerLines []string) (value, option *string) {
	for _, line := range answerLines {
		m := correctAnswerPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])

		if mm := letterKeyPattern.FindStringSubmatch(rest); mm != nil {
			return ptr(strings.TrimSpace(mm[1])), ptr(strings.TrimSpace(mm[2]))
		}

		if mm := parentheticalPattern.FindStringSubmatch(rest); mm != nil {
			left := strings.TrimSpace(mm[1])
			right := strings.TrimSpace(mm[2])
			if strings.EqualFold(left, right) {
				return ptr(right), nil
			}
			return ptr(left), nil
		}

		return ptr(rest), nil
	}
	return nil, nil
}

func ptr(s string) *string {
	return &s
}
