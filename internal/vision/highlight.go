package vision

import (
	"time"

	"portfolio3d/internal/scene"
)

// Entry tracks one highlighted object and the ghosts built for it.
type Entry struct {
	Original *scene.Node
	Ghosts   []*GhostPair
	LastSync time.Time
}

// Manager owns the highlighted set. Objects are compared by identity.
type Manager struct {
	factory Factory
	entries map[*scene.Node]*Entry
	order   []*scene.Node
	clip    ClipUniforms
	env     float32
}

func NewManager(factory Factory) *Manager {
	return &Manager{
		factory: factory,
		entries: make(map[*scene.Node]*Entry),
		env:     0,
	}
}

func (m *Manager) Has(obj *scene.Node) bool {
	_, ok := m.entries[obj]
	return ok
}

func (m *Manager) Len() int { return len(m.entries) }

// Entries returns the entries in the order their objects were highlighted.
func (m *Manager) Entries() []*Entry {
	out := make([]*Entry, 0, len(m.order))
	for _, o := range m.order {
		out = append(out, m.entries[o])
	}
	return out
}

// Highlighted returns the highlighted objects in insertion order.
func (m *Manager) Highlighted() []*scene.Node {
	out := make([]*scene.Node, len(m.order))
	copy(out, m.order)
	return out
}

// Diff splits visible against the current set: toAdd holds visible objects
// not yet highlighted, toRemove highlighted objects no longer visible.
func (m *Manager) Diff(visible []*scene.Node) (toAdd, toRemove []*scene.Node) {
	inVisible := make(map[*scene.Node]struct{}, len(visible))
	for _, o := range visible {
		if o == nil {
			continue
		}
		if _, dup := inVisible[o]; dup {
			continue
		}
		inVisible[o] = struct{}{}
		if !m.Has(o) {
			toAdd = append(toAdd, o)
		}
	}
	for _, o := range m.order {
		if _, ok := inVisible[o]; !ok {
			toRemove = append(toRemove, o)
		}
	}
	return toAdd, toRemove
}

// Add ghosts obj into host. It is a no-op for objects already highlighted,
// and reports whether a new entry was created.
func (m *Manager) Add(obj *scene.Node, host Host, now time.Time) bool {
	if obj == nil || m.Has(obj) {
		return false
	}
	if host == nil || !host.Contains(obj) {
		return false
	}
	ghosts := m.factory.Build(obj, host, m.clip)
	for _, g := range ghosts {
		g.SetEnvelope(m.env)
	}
	m.entries[obj] = &Entry{Original: obj, Ghosts: ghosts, LastSync: now}
	m.order = append(m.order, obj)
	return true
}

// Remove detaches every ghost of obj and forgets it.
func (m *Manager) Remove(obj *scene.Node) {
	e, ok := m.entries[obj]
	if !ok {
		return
	}
	for _, g := range e.Ghosts {
		g.Detach()
	}
	delete(m.entries, obj)
	for i, o := range m.order {
		if o == obj {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Clear removes all entries.
func (m *Manager) Clear() {
	for _, e := range m.entries {
		for _, g := range e.Ghosts {
			g.Detach()
		}
	}
	m.entries = make(map[*scene.Node]*Entry)
	m.order = nil
}

// Sync refreshes ghost transforms for entries not synced within every.
func (m *Manager) Sync(now time.Time, every time.Duration) {
	for _, o := range m.order {
		e := m.entries[o]
		if now.Sub(e.LastSync) <= every {
			continue
		}
		for _, g := range e.Ghosts {
			g.Sync()
		}
		e.LastSync = now
	}
}

// SetIntensity applies the envelope to every ghost and to ghosts built later.
func (m *Manager) SetIntensity(env float32) {
	m.env = env
	for _, e := range m.entries {
		for _, g := range e.Ghosts {
			g.SetEnvelope(env)
		}
	}
}

// SetClip updates window and ground uniforms on every ghost and on ghosts
// built later.
func (m *Manager) SetClip(c ClipUniforms) {
	m.clip = c
	for _, e := range m.entries {
		for _, g := range e.Ghosts {
			g.SetClip(c)
		}
	}
}

func (m *Manager) Clip() ClipUniforms { return m.clip }
