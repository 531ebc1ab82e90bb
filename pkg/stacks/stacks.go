// Package stacks implements named insertion points ("stacks") that let other
// parts of an application inject markup into a template before or after a
// standard element. Content pushed onto a stack is appended, content
// prepended goes in front of everything already there.
package stacks

import (
	"sort"
	"strings"
	"sync"
)

// Sanitizer cleans markup before it is stored on a stack.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Set holds the contents of every named stack for one render.
type Set struct {
	mu        sync.RWMutex
	stacks    map[string]*stack
	sanitizer Sanitizer
}

type stack struct {
	prepends []string
	pushes   []string
}

// Option customises a Set.
type Option func(*Set)

// WithSanitizer overrides the default table cell sanitizer. Passing nil
// stores markup untouched.
func WithSanitizer(s Sanitizer) Option {
	return func(set *Set) {
		set.sanitizer = s
	}
}

// New returns an empty Set using the default sanitizer.
func New(options ...Option) *Set {
	set := &Set{
		stacks:    make(map[string]*stack),
		sanitizer: DefaultSanitizer(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(set)
	}
	return set
}

// Push appends markup to the named stack.
func (s *Set) Push(name, markup string) *Set {
	name, markup, ok := s.prepare(name, markup)
	if !ok {
		return s
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.ensure(name)
	st.pushes = append(st.pushes, markup)
	return s
}

// Prepend places markup in front of the named stack.
func (s *Set) Prepend(name, markup string) *Set {
	name, markup, ok := s.prepare(name, markup)
	if !ok {
		return s
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.ensure(name)
	st.prepends = append(st.prepends, markup)
	return s
}

// Render returns the concatenated contents of the named stack. Unknown names
// render as the empty string.
func (s *Set) Render(name string) string {
	if s == nil {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stacks[strings.TrimSpace(name)]
	if !ok {
		return ""
	}
	return st.render()
}

// Names lists the stacks holding content, sorted.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.stacks))
	for name := range s.stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot renders every stack into a map keyed by stack name.
func (s *Set) Snapshot() map[string]string {
	out := make(map[string]string)
	if s == nil {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, st := range s.stacks {
		out[name] = st.render()
	}
	return out
}

// Clone returns an independent copy, so shared stacks registered at start up
// can be extended per request.
func (s *Set) Clone() *Set {
	if s == nil {
		return New()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &Set{
		stacks:    make(map[string]*stack, len(s.stacks)),
		sanitizer: s.sanitizer,
	}
	for name, st := range s.stacks {
		out.stacks[name] = &stack{
			prepends: append([]string(nil), st.prepends...),
			pushes:   append([]string(nil), st.pushes...),
		}
	}
	return out
}

func (s *Set) prepare(name, markup string) (string, string, bool) {
	if s == nil {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", false
	}
	if s.sanitizer != nil {
		markup = s.sanitizer.Sanitize(markup)
	}
	if strings.TrimSpace(markup) == "" {
		return "", "", false
	}
	return name, markup, true
}

func (s *Set) ensure(name string) *stack {
	st, ok := s.stacks[name]
	if !ok {
		st = &stack{}
		s.stacks[name] = st
	}
	return st
}

func (st *stack) render() string {
	var b strings.Builder
	for i := len(st.prepends) - 1; i >= 0; i-- {
		b.WriteString(st.prepends[i])
	}
	for _, markup := range st.pushes {
		b.WriteString(markup)
	}
	return b.String()
}
