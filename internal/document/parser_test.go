package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []string {
	return []string{
		"CNAB Study Questions",
		"",
		"Question 1 of 3",
		"Which protocol assigns addresses automatically?",
		"A - BOOTP",
		"B - SMB",
		"C - DHCP",
		"",
		"[+] Answer>   the correct answer is DHCP (C)",
		"DHCP leases addresses to clients.",
		"",
		"===================",
		"Question 2 of 3",
		"This block never shows its answer.",
		"question 3 OF 3",
		"  What does a switch forward?",
		"[+] Answer>",
		"  the switch forwards frames based on MAC",
		"The correct answer is Frames",
		"",
		"",
	}
}

func TestScanSplitsBlocks(t *testing.T) {
	res := Scan(sampleLines())

	require.Len(t, res.Records, 2)
	require.Len(t, res.Skipped, 1)

	first := res.Records[0]
	assert.Equal(t, 1, first.Qnum)
	assert.Equal(t, "Which protocol assigns addresses automatically?\nA - BOOTP\nB - SMB\nC - DHCP", first.QuestionText)
	assert.Equal(t, "   the correct answer is DHCP (C)\nDHCP leases addresses to clients.", first.AnswerText)
	require.NotNil(t, first.AnswerValue)
	require.NotNil(t, first.AnswerOption)
	assert.Equal(t, "DHCP", *first.AnswerValue)
	assert.Equal(t, "C", *first.AnswerOption)

	second := res.Records[1]
	assert.Equal(t, 3, second.Qnum)
	assert.Equal(t, "  What does a switch forward?", second.QuestionText)
	assert.Equal(t, "  the switch forwards frames based on MAC\nThe correct answer is Frames", second.AnswerText)
	assert.Equal(t, "Frames", second.Value())
	assert.Nil(t, second.AnswerOption)

	assert.Equal(t, SkippedBlock{Line: 13, Qnum: 2, Reason: ReasonMissingAnswerMarker}, res.Skipped[0])
}

func TestScanTruncatesAtSectionTerminator(t *testing.T) {
	res := Scan([]string{
		"Question 7 of 9",
		"Prompt",
		"[+] Answer> first",
		"second",
		"===========",
		"trailing notes that belong to no answer",
	})
	require.Len(t, res.Records, 1)
	assert.Equal(t, " first\nsecond", res.Records[0].AnswerText)
}

func TestScanKeepsShortEqualsRuns(t *testing.T) {
	res := Scan([]string{
		"Question 1 of 1",
		"Prompt",
		"[+] Answer> x",
		"==========",
		"more",
	})
	require.Len(t, res.Records, 1)
	assert.Equal(t, " x\n==========\nmore", res.Records[0].AnswerText)
}

func TestScanPreservesLeadingAndInteriorBlankLines(t *testing.T) {
	res := Scan([]string{
		"Question 4 of 4",
		"",
		"Line one",
		"",
		"    Line two",
		"",
		"[+] Answer>",
		"",
		"Answer body",
		"",
	})
	require.Len(t, res.Records, 1)
	assert.Equal(t, "\nLine one\n\n    Line two", res.Records[0].QuestionText)
	assert.Equal(t, "\nAnswer body", res.Records[0].AnswerText)
	assert.Nil(t, res.Records[0].AnswerValue)
}

func TestScanIgnoresTextBeforeFirstMarker(t *testing.T) {
	res := Scan([]string{
		"[+] Answer> stray",
		"Question 5 of 5",
		"Prompt",
		"[+] Answer> the correct answer is Yes",
	})
	require.Len(t, res.Records, 1)
	assert.Equal(t, 5, res.Records[0].Qnum)
	assert.Equal(t, "Yes", res.Records[0].Value())
}

func TestScanMarkerMustBeWholeLine(t *testing.T) {
	res := Scan([]string{
		"Question 1 of 2",
		"See Question 2 of 2 for context",
		"[+] Answer> ok",
	})
	require.Len(t, res.Records, 1)
	assert.Equal(t, "See Question 2 of 2 for context", res.Records[0].QuestionText)
}

func TestScanReportsUnparsableNumber(t *testing.T) {
	res := Scan([]string{
		"Question 99999999999999999999999 of 1",
		"Prompt",
		"[+] Answer> x",
	})
	assert.Empty(t, res.Records)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonBadQuestionNumber, res.Skipped[0].Reason)
}

func TestParseFailsOnEmptyResult(t *testing.T) {
	_, err := Parse([]string{"Question 1 of 1", "no answer here"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseIsDeterministic(t *testing.T) {
	lines := sampleLines()
	first, err := Parse(lines)
	require.NoError(t, err)
	second, err := Parse(lines)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
