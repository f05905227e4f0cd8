package grading

import (
	"regexp"
	"strings"

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// minFallbackLen is the shortest candidate accepted by the answer-text phrase search.
const minFallbackLen = 3

var whitespaceRun = regexp.MustCompile(`\s+`)

// Config holds grading policy.
type Config struct {
	CaseSensitive bool
}

// Engine grades free-form answers against question records.
type Engine struct {
	config Config
}

// NewEngine creates a grading engine with the provided config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Grade applies the engine's configured case policy.
func (e *Engine) Grade(answer string, rec question.Record) bool {
	return Grade(answer, rec, e.config.CaseSensitive)
}

// Grade reports whether answer is correct for rec. Rules, first match wins:
//  1. blank answers are wrong
//  2. records with an option letter accept that letter only
//  3. answer_value is compared as a set of comma-separated parts (unless the
//     question demands alphabetical ordering) and then as a whole string
//  4. otherwise the answer must appear as a whole word or phrase in answer_text
func Grade(answer string, rec question.Record, caseSensitive bool) bool {
	ua := strings.TrimSpace(answer)
	if ua == "" {
		return false
	}

	if rec.AnswerOption != nil && *rec.AnswerOption != "" {
		return strings.ToUpper(ua) == strings.ToUpper(strings.TrimSpace(*rec.AnswerOption))
	}

	if rec.AnswerValue != nil && *rec.AnswerValue != "" {
		if matchesValue(ua, *rec.AnswerValue, rec.QuestionText, caseSensitive) {
			return true
		}
	}

	return containsPhrase(rec.AnswerText, ua, caseSensitive)
}

func matchesValue(ua, value, questionText string, caseSensitive bool) bool {
	if !requiresOrder(questionText) && strings.Contains(value, ",") && strings.Contains(ua, ",") {
		if sameSet(splitList(ua), splitList(value), caseSensitive) {
			return true
		}
	}
	if caseSensitive {
		return ua == strings.TrimSpace(value)
	}
	return Normalize(ua) == Normalize(value)
}

// requiresOrder reports whether the question asks for an ordered list.
func requiresOrder(questionText string) bool {
	q := strings.ToLower(questionText)
	return strings.Contains(q, "alphabetical order") || strings.Contains(q, "reverse alphabetical")
}

// Normalize collapses whitespace runs, trims, and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
}

func splitList(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func sameSet(a, b []string, caseSensitive bool) bool {
	key := Normalize
	if caseSensitive {
		key = strings.TrimSpace
	}
	sa := toSet(a, key)
	sb := toSet(b, key)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}
	return true
}

func toSet(items []string, key func(string) string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[key(s)] = struct{}{}
	}
	return m
}

// Word characters are Unicode letters, digits and '_'.
const (
	wordEdgeBefore = `(?:^|[^\p{L}\p{N}_])`
	wordEdgeAfter  = `(?:$|[^\p{L}\p{N}_])`
)

// containsPhrase searches text for candidate not touching a word character on either side.
func containsPhrase(text, candidate string, caseSensitive bool) bool {
	if !caseSensitive {
		text = Normalize(text)
		candidate = Normalize(candidate)
	}
	if len([]rune(candidate)) < minFallbackLen {
		return false
	}
	re, err := regexp.Compile(wordEdgeBefore + regexp.QuoteMeta(candidate) + wordEdgeAfter)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
