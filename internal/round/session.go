package round

import (
	"context"
	"sync"
	"time"

	"github.com/gokatarajesh/quiz-bank/internal/grading"
)

const defaultSessionTTL = 2 * time.Hour

// SessionStore persists round sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, sess Session) error
	// Load returns ErrRoundNotFound for unknown or expired rounds.
	Load(ctx context.Context, id string) (*Session, error)
	// RecordResult stores the result for one position without touching the
	// others, so concurrent answers to one round cannot overwrite each other.
	RecordResult(ctx context.Context, id string, result grading.Result) error
}

// MemorySessionStore keeps sessions in process memory with a TTL.
type MemorySessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemorySessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
	m.entries[sess.ID] = memoryEntry{sess: cloneSession(sess), expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || m.now().After(e.expiresAt) {
		return nil, ErrRoundNotFound
	}
	sess := cloneSession(e.sess)
	return &sess, nil
}

func (m *MemorySessionStore) RecordResult(_ context.Context, id string, result grading.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || m.now().After(e.expiresAt) {
		return ErrRoundNotFound
	}
	if e.sess.Results == nil {
		e.sess.Results = map[int]grading.Result{}
	}
	e.sess.Results[result.Position] = result
	m.entries[id] = e
	return nil
}

func cloneSession(s Session) Session {
	out := s
	out.Qnums = append([]int(nil), s.Qnums...)
	out.Results = make(map[int]grading.Result, len(s.Results))
	for k, v := range s.Results {
		out.Results[k] = v
	}
	return out
}
