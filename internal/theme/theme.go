// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme turns a free-text theme ("summer food", "toys") into a
// handful of concrete icon subjects. Known themes draw a random sample
// from a static pool so repeated generations vary; unknown themes fall
// back to templated phrases built from the theme text itself.
package theme

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// SubjectCount is the number of subjects returned per theme.
const SubjectCount = 4

// fallbackTemplates are used when no pool key matches the theme.
var fallbackTemplates = []string{
	"%s object",
	"different %s item",
	"another %s thing",
	"unique %s element",
}

// Selector picks icon subjects for a theme. It is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand replaces the random source, e.g. with a seeded one in tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rng = r
	}
}

// New creates a Selector seeded from the clock unless WithRand is given.
func New(opts ...Option) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Subjects returns SubjectCount subjects for the theme.
//
// The theme matches a pool when either string contains the other
// (case-insensitive), so "fast food" and "foo" both pick "food". The
// matched pool is shuffled with Fisher-Yates and the first SubjectCount
// entries are returned, which keeps them distinct.
func (s *Selector) Subjects(theme string) []string {
	lower := strings.ToLower(theme)

	for _, p := range pools {
		if strings.Contains(lower, p.key) || strings.Contains(p.key, lower) {
			shuffled := s.shuffle(p.subjects)
			return shuffled[:SubjectCount]
		}
	}

	subjects := make([]string, len(fallbackTemplates))
	for i, tmpl := range fallbackTemplates {
		subjects[i] = fmt.Sprintf(tmpl, theme)
	}
	return subjects
}

// shuffle returns a shuffled copy of in; the pool itself is never mutated.
func (s *Selector) shuffle(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Keys returns the pool keys in match order.
func Keys() []string {
	keys := make([]string, len(pools))
	for i, p := range pools {
		keys[i] = p.key
	}
	return keys
}

// Pool returns a copy of the subjects for a key, or nil if unknown.
func Pool(key string) []string {
	for _, p := range pools {
		if p.key == key {
			out := make([]string, len(p.subjects))
			copy(out, p.subjects)
			return out
		}
	}
	return nil
}
