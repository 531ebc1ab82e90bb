// Package settings exposes application settings (the values an administrator
// changes at runtime, such as where discounts are applied) through a small
// read-only interface backed by koanf.
package settings

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
)

// Store reads settings by dotted key.
type Store interface {
	String(key, fallback string) string
}

// Koanf adapts a koanf instance to Store.
type Koanf struct {
	k *koanf.Koanf
}

var _ Store = (*Koanf)(nil)

// New wraps k. A nil instance yields fallbacks for every key.
func New(k *koanf.Koanf) *Koanf {
	return &Koanf{k: k}
}

// FromMap builds a store from a nested or dotted map.
func FromMap(values map[string]any) (*Koanf, error) {
	k := koanf.New(".")
	if len(values) > 0 {
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, fmt.Errorf("settings: load map: %w", err)
		}
	}
	return New(k), nil
}

// String returns the value at key, or fallback when the key is unset or blank.
func (s *Koanf) String(key, fallback string) string {
	if s == nil || s.k == nil || !s.k.Exists(key) {
		return fallback
	}
	value := strings.TrimSpace(s.k.String(key))
	if value == "" {
		return fallback
	}
	return value
}

// Map is a plain map based Store, handy for tests and static setups.
type Map map[string]string

// String implements Store.
func (m Map) String(key, fallback string) string {
	if value, ok := m[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
