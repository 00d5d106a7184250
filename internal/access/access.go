// Package access tracks which subjects the learner has unlocked with a
// license key. It is a convenience gate, not a security boundary.
package access

import (
	"errors"
	"strings"
	"sync"

	"github.com/tkha/tierquiz/internal/config"
)

// ErrInvalidKey is returned by Unlock for a key that grants nothing
// relevant.
var ErrInvalidKey = errors.New("invalid license key")

// Gate holds the unlocked subject set for the running process.
type Gate struct {
	mu       sync.RWMutex
	all      []string
	grants   map[string][]string
	unlocked map[string]bool
}

// NewGate builds a gate from the catalogue and key table. Subjects listed
// in cfg.Access.Open start unlocked.
func NewGate(cfg *config.Config) *Gate {
	g := &Gate{
		grants:   make(map[string][]string, len(cfg.Access.Keys)),
		unlocked: make(map[string]bool),
	}
	for _, s := range cfg.Subjects {
		g.all = append(g.all, s.ID)
	}
	for _, k := range cfg.Access.Keys {
		g.grants[normalizeKey(k.Key)] = k.Subjects
	}
	for _, id := range cfg.Access.Open {
		g.unlocked[id] = true
	}
	return g
}

// IsUnlocked reports whether subject may be played.
func (g *Gate) IsUnlocked(subject string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unlocked[subject]
}

// Unlock applies a license key entered while subject was selected. A key
// granting "*" unlocks every subject; any other key must grant subject
// itself. Returns the subjects newly unlocked.
func (g *Gate) Unlock(key, subject string) ([]string, error) {
	granted, ok := g.grants[normalizeKey(key)]
	if !ok {
		return nil, ErrInvalidKey
	}

	var targets []string
	for _, id := range granted {
		if id == config.AllSubjects {
			targets = g.all
			break
		}
	}
	if targets == nil {
		for _, id := range granted {
			if id == subject {
				targets = granted
				break
			}
		}
	}
	if targets == nil {
		return nil, ErrInvalidKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	var fresh []string
	for _, id := range targets {
		if !g.unlocked[id] {
			g.unlocked[id] = true
			fresh = append(fresh, id)
		}
	}
	return fresh, nil
}

// Unlocked returns the unlocked subject ids in catalogue order.
func (g *Gate) Unlocked() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, id := range g.all {
		if g.unlocked[id] {
			out = append(out, id)
		}
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToUpper(strings.TrimSpace(k))
}
