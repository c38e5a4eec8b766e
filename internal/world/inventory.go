package world

import (
	"errors"
	"fmt"

	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"
)

const MaxSlots = 12

var (
	ErrInventoryFull  = errors.New("inventory full")
	ErrNotCollectible = errors.New("not collectible")
)

type Item struct {
	Name string
	From vision.SceneContext
}

// Lock is a node that opens when the player uses the required item on it.
type Lock struct {
	Required string
	Locked   bool
	OnUse    func(n *scene.Node, item Item)
}

// Inventory holds collected items and the locks they open.
type Inventory struct {
	registry *Registry
	tracker  vision.Tracker

	items    []Item
	selected int
	locks    map[*scene.Node]*Lock
}

func NewInventory(r *Registry, tracker vision.Tracker) *Inventory {
	return &Inventory{registry: r, tracker: tracker, selected: -1, locks: make(map[*scene.Node]*Lock)}
}

func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Inventory) Has(name string) bool {
	for _, it := range inv.items {
		if it.Name == name {
			return true
		}
	}
	return false
}

// Collect picks up a collectible node: it leaves its scene, drops out of the
// registry and becomes an item.
func (inv *Inventory) Collect(n *scene.Node) (Item, error) {
	m, ok := inv.registry.Meta(n)
	if !ok || !m.Collectible {
		return Item{}, fmt.Errorf("%q: %w", n.Name, ErrNotCollectible)
	}
	if len(inv.items) >= MaxSlots {
		return Item{}, ErrInventoryFull
	}

	ctx := inv.registry.home[n]
	if s, ok := inv.registry.Scene(ctx); ok {
		s.RemoveNode(n)
	}
	inv.registry.Unregister(n)

	item := Item{Name: m.Label, From: ctx}
	inv.items = append(inv.items, item)
	inv.track("add_item", map[string]any{"itemName": item.Name})
	utils.Info("Picked up %s", item.Name)
	return item, nil
}

// Remove drops the first item called name.
func (inv *Inventory) Remove(name string) (Item, bool) {
	for i, it := range inv.items {
		if it.Name != name {
			continue
		}
		inv.items = append(inv.items[:i], inv.items[i+1:]...)
		switch {
		case inv.selected == i:
			inv.selected = -1
		case inv.selected > i:
			inv.selected--
		}
		inv.track("remove_item", map[string]any{"itemName": name})
		return it, true
	}
	return Item{}, false
}

// Select marks slot as the active item. Out of range slots clear the
// selection.
func (inv *Inventory) Select(slot int) {
	if slot < 0 || slot >= len(inv.items) {
		inv.selected = -1
		return
	}
	inv.selected = slot
}

func (inv *Inventory) Selected() (Item, bool) {
	if inv.selected < 0 {
		return Item{}, false
	}
	return inv.items[inv.selected], true
}

func (inv *Inventory) AddLock(n *scene.Node, required string, onUse func(*scene.Node, Item)) {
	inv.locks[n] = &Lock{Required: required, Locked: true, OnUse: onUse}
}

// CanUse reports whether the selected item opens n.
func (inv *Inventory) CanUse(n *scene.Node) bool {
	l, ok := inv.locks[n]
	if !ok || !l.Locked {
		return false
	}
	it, ok := inv.Selected()
	return ok && it.Name == l.Required
}

// UseOn opens n with the selected item, consuming it.
func (inv *Inventory) UseOn(n *scene.Node) bool {
	if !inv.CanUse(n) {
		return false
	}
	l := inv.locks[n]
	it, _ := inv.Selected()
	if l.OnUse != nil {
		l.OnUse(n, it)
	}
	l.Locked = false
	inv.Remove(l.Required)
	inv.track("use_item", map[string]any{"itemName": l.Required, "targetObject": n.Name})
	return true
}

// Hint is the interaction prompt for n, empty when n has no lock.
func (inv *Inventory) Hint(n *scene.Node) string {
	l, ok := inv.locks[n]
	if !ok {
		return ""
	}
	if !l.Locked {
		return "Already unlocked"
	}
	if inv.CanUse(n) {
		return "Press E to use " + l.Required
	}
	return "Requires: " + l.Required
}

func (inv *Inventory) track(action string, props map[string]any) {
	if inv.tracker == nil {
		return
	}
	if err := inv.tracker.TrackInteraction("inventory", action, props); err != nil {
		utils.Debug("Inventory: analytics %s failed: %v", action, err)
	}
}
