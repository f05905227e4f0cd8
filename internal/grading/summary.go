package grading

import "math"

// Result is the graded outcome of one answered question in a round.
type Result struct {
	Position int    `json:"position"`
	Qnum     int    `json:"qnum"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

// Summary aggregates a round's results.
type Summary struct {
	Correct       int      `json:"correct"`
	Total         int      `json:"total"`
	Score         float64  `json:"score"` // percentage, two decimals
	LongestStreak int      `json:"longest_streak"`
	Missed        []Result `json:"missed"`
}

// Summarize computes totals, percentage score and the longest run of correct
// answers. Missed results keep their round order.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), Missed: []Result{}}
	if len(results) == 0 {
		return s
	}

	streak := 0
	for _, r := range results {
		if r.Correct {
			s.Correct++
			streak++
			if streak > s.LongestStreak {
				s.LongestStreak = streak
			}
			continue
		}
		streak = 0
		s.Missed = append(s.Missed, r)
	}

	pct := float64(s.Correct) / float64(s.Total) * 100
	s.Score = math.Round(pct*100) / 100
	return s
}
