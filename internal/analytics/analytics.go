// Package analytics keeps an in-memory log of user interactions.
package analytics

import (
	"errors"
	"sync"
	"time"

	"portfolio3d/internal/utils"
)

const MaxInteractions = 1000

var ErrEmptyCategory = errors.New("analytics: empty category")

type Interaction struct {
	Timestamp time.Time      `json:"timestamp"`
	Category  string         `json:"category"`
	Action    string         `json:"action"`
	Props     map[string]any `json:"props"`
}

type Snapshot struct {
	TotalInteractions int           `json:"totalInteractions"`
	Interactions      []Interaction `json:"interactions"`
}

// Tracker keeps the most recent MaxInteractions interactions.
type Tracker struct {
	mu           sync.Mutex
	now          func() time.Time
	interactions []Interaction
}

func New(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

func (t *Tracker) TrackInteraction(category, action string, props map[string]any) error {
	if category == "" {
		return ErrEmptyCategory
	}
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}

	t.mu.Lock()
	t.interactions = append(t.interactions, Interaction{
		Timestamp: t.now(),
		Category:  category,
		Action:    action,
		Props:     cp,
	})
	if over := len(t.interactions) - MaxInteractions; over > 0 {
		t.interactions = append(t.interactions[:0], t.interactions[over:]...)
	}
	t.mu.Unlock()

	utils.Debug("Analytics: %s %s %v", category, action, cp)
	return nil
}

func (t *Tracker) Data() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Interaction, len(t.interactions))
	copy(out, t.interactions)
	return Snapshot{TotalInteractions: len(out), Interactions: out}
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	t.interactions = nil
	t.mu.Unlock()
}
