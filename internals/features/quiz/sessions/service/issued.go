package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// IssuedGrace is added to the time limit before an issued sample expires.
const IssuedGrace = 2 * time.Minute

type issuedSample struct {
	language string
	ids      []uuid.UUID
	expires  time.Time
}

// issuedSamples remembers the last sample handed to each account so that a
// submission without questionIds is still graded against the whole set.
type issuedSamples struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[uuid.UUID]issuedSample
}

func newIssuedSamples(ttl time.Duration) *issuedSamples {
	return &issuedSamples{ttl: ttl, now: time.Now, m: make(map[uuid.UUID]issuedSample)}
}

// put replaces any earlier sample of user and drops expired entries.
func (r *issuedSamples) put(user uuid.UUID, language string, ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, v := range r.m {
		if now.After(v.expires) {
			delete(r.m, k)
		}
	}
	if len(ids) == 0 {
		delete(r.m, user)
		return
	}
	r.m[user] = issuedSample{language: language, ids: ids, expires: now.Add(r.ttl)}
}

// peek returns the live sample of user for language. An empty language
// matches any sample.
func (r *issuedSamples) peek(user uuid.UUID, language string) ([]uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.m[user]
	if !ok || r.now().After(v.expires) {
		return nil, false
	}
	if language != "" && language != v.language {
		return nil, false
	}
	return v.ids, true
}

func (r *issuedSamples) drop(user uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, user)
}
