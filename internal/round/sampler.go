package round

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// NewRand returns a generator seeded with *seed, or from the clock when seed is nil.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ParseSeed parses a caller-supplied seed. Blank input means "no seed".
func ParseSeed(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidSeed, raw)
	}
	return &n, nil
}

// Sample draws k distinct values from population without replacement and
// returns them in draw order. population is left untouched.
func Sample(rng *rand.Rand, population []int, k int) ([]int, error) {
	if k < 0 || k > len(population) {
		return nil, fmt.Errorf("sample %d of %d: %w", k, len(population), ErrInvalidCount)
	}
	pool := append([]int(nil), population...)
	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out[i] = pool[i]
	}
	return out, nil
}
