package question

import (
	"regexp"
	"strings"
)

// Option is a rendered multiple-choice line such as "C - DHCP".
type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Accepts both a hyphen and an en dash between letter and text.
var optionLinePattern = regexp.MustCompile(`^\s*([A-Z])\s*[-–]\s*(.+?)\s*$`)

// ExtractOptions collects the option lines embedded in a question's text, in
// line order. Lines that are not options are ignored.
func ExtractOptions(questionText string) []Option {
	var opts []Option
	for _, line := range strings.Split(questionText, "\n") {
		m := optionLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		opts = append(opts, Option{Letter: m[1], Text: m[2]})
	}
	return opts
}
