package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		{Position: 1, Qnum: 10, Correct: true},
		{Position: 2, Qnum: 11, Answer: "b", Correct: false},
		{Position: 3, Qnum: 12, Correct: true},
		{Position: 4, Qnum: 13, Correct: true},
		{Position: 5, Qnum: 14, Correct: true},
		{Position: 6, Qnum: 15, Answer: "", Correct: false},
	}

	s := Summarize(results)
	assert.Equal(t, 4, s.Correct)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 66.67, s.Score)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, []Result{results[1], results[5]}, s.Missed)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Score)
	assert.Empty(t, s.Missed)
}
