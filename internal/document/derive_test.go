package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeys(t *testing.T) {
	cases := []struct {
		name       string
		lines      []string
		wantValue  string
		wantOption string
	}{
		{
			name:       "letter key",
			lines:      []string{"   the correct answer is Frames (C)"},
			wantValue:  "Frames",
			wantOption: "C",
		},
		{
			name:      "repeated parenthetical",
			lines:     []string{"The correct answer is Social Engineering (social engineering)"},
			wantValue: "social engineering",
		},
		{
			name:      "explanatory parenthetical",
			lines:     []string{"The Correct Answer Is Port 443 (HTTPS over TLS)"},
			wantValue: "Port 443",
		},
		{
			name:      "lowercase letter is not an option",
			lines:     []string{"the correct answer is Frames (c)"},
			wantValue: "Frames",
		},
		{
			name:      "bare value",
			lines:     []string{"Some context first.", "the correct answer is Blue, Red  "},
			wantValue: "Blue, Red",
		},
		{
			name:      "first qualifying line wins",
			lines:     []string{"the correct answer is One", "the correct answer is Two (B)"},
			wantValue: "One",
		},
		{
			name:  "phrase without value",
			lines: []string{"the correct answer is", "nothing follows"},
		},
		{
			name:  "no phrase",
			lines: []string{"the switch forwards frames based on MAC"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, option := DeriveKeys(tc.lines)
			if tc.wantValue == "" {
				assert.Nil(t, value)
			} else if assert.NotNil(t, value) {
				assert.Equal(t, tc.wantValue, *value)
			}
			if tc.wantOption == "" {
				assert.Nil(t, option)
			} else if assert.NotNil(t, option) {
				assert.Equal(t, tc.wantOption, *option)
			}
		})
	}
}
