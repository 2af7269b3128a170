// Package idgen provides the id sources used when a document is created.
package idgen

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator hands out ids that are unique for the lifetime of the generator.
type Generator interface {
	NewID() string
}

// TimeBased issues millisecond timestamps. When two calls land in the same
// millisecond the later one is bumped forward, so ids are strictly increasing.
type TimeBased struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimeBased creates a TimeBased generator; a nil clock means time.Now.
func NewTimeBased(now func() time.Time) *TimeBased {
	if now == nil {
		now = time.Now
	}
	return &TimeBased{now: now}
}

func (g *TimeBased) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUID issues random version 4 uuids.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence issues start+1, start+2, ... and is meant for tests.
type Sequence struct {
	mu sync.Mutex
	n  int64
}

func NewSequence(start int64) *Sequence {
	return &Sequence{n: start}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return strconv.FormatInt(s.n, 10)
}

// Func adapts a plain function to Generator.
type Func func() string

func (f Func) NewID() string {
	return f()
}
