// Package cascade keeps the state of a chain of dependent selects.
//
// Levels are strictly ordered: a level's value only means something while every
// earlier level has a value, so changing level k always clears and disables every
// level after it before the next level is requested.
package cascade

import (
	"strconv"

	"github.com/Rorical/RoriParts/internal/models"
)

// Select is one dropdown of the chain.
type Select struct {
	Placeholder string // Empty means the select has no placeholder and picks its first option
	Items       []models.SelectableItem
	Selected    int // Index into Items, -1 when nothing is chosen
	Disabled    bool
}

// Value returns the id of the chosen item, "" when nothing is chosen.
func (s Select) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return ""
	}
	return s.Items[s.Selected].ID
}

// Item returns the chosen item.
func (s Select) Item() (models.SelectableItem, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return models.SelectableItem{}, false
	}
	return s.Items[s.Selected], true
}

func (s Select) hasPlaceholder() bool {
	return s.Placeholder != ""
}

func (s *Select) clear() {
	s.Items = nil
	s.Selected = -1
	s.Disabled = true
}

// Fetch asks for the options of Level, keyed by the value of the level before it.
type Fetch struct {
	Level    int
	ParentID string
	Token    uint64
}

// Chain is an ordered list of dependent selects.
type Chain struct {
	selects []Select
	tokens  []uint64
}

// NewChain creates a chain with one select per placeholder. Every level starts
// empty and disabled.
func NewChain(placeholders ...string) *Chain {
	c := &Chain{
		selects: make([]Select, len(placeholders)),
		tokens:  make([]uint64, len(placeholders)),
	}
	for i, p := range placeholders {
		c.selects[i] = Select{Placeholder: p}
		c.selects[i].clear()
	}
	return c
}

func (c *Chain) Len() int {
	return len(c.selects)
}

// Select returns a copy of level k.
func (c *Chain) Select(k int) Select {
	return c.selects[k]
}

// Value returns the chosen id at level k.
func (c *Chain) Value(k int) string {
	return c.selects[k].Value()
}

// Values returns the chosen ids of every level in order.
func (c *Chain) Values() []string {
	values := make([]string, len(c.selects))
	for i, s := range c.selects {
		values[i] = s.Value()
	}
	return values
}

// Begin clears level k and every level after it and returns a fresh fetch for
// level k. It is used for the root level, which has no parent.
func (c *Chain) Begin(k int) Fetch {
	c.clearFrom(k)
	return Fetch{Level: k, Token: c.tokens[k]}
}

// Change sets level k to value. Every later level is cleared and disabled and any
// fetch already issued for them becomes stale. The returned fetch is for level k+1;
// ok is false when value is empty or unknown, or k is the last level.
func (c *Chain) Change(k int, value string) (Fetch, bool) {
	return c.Choose(k, indexOf(c.selects[k].Items, value))
}

// Choose is Change by position, -1 picks the placeholder. Lists may hold the same
// id twice, so positions are what the view moves through.
func (c *Chain) Choose(k, idx int) (Fetch, bool) {
	s := &c.selects[k]
	if idx < 0 || idx >= len(s.Items) {
		idx = -1
	}
	s.Selected = idx

	c.clearFrom(k + 1)

	value := s.Value()
	if value == "" || k+1 >= len(c.selects) {
		return Fetch{}, false
	}
	return Fetch{Level: k + 1, ParentID: value, Token: c.tokens[k+1]}, true
}

// Move shifts the choice at level k by delta options, wrapping around. The
// placeholder counts as an option. moved is false when the level is disabled.
func (c *Chain) Move(k, delta int) (fetch Fetch, ok bool, moved bool) {
	s := c.selects[k]
	if s.Disabled || len(s.Items) == 0 {
		return Fetch{}, false, false
	}

	// Position 0 is the placeholder when there is one
	offset := 0
	if s.hasPlaceholder() {
		offset = 1
	}
	n := len(s.Items) + offset
	pos := ((s.Selected+offset+delta)%n + n) % n

	fetch, ok = c.Choose(k, pos-offset)
	return fetch, ok, true
}

// Populate fills level k with items if token is still current. A select without
// placeholder picks its first item. The level is enabled only when it has items.
func (c *Chain) Populate(k int, token uint64, items []models.SelectableItem) bool {
	if !c.Current(k, token) {
		return false
	}
	s := &c.selects[k]
	s.Items = items
	s.Selected = -1
	if !s.hasPlaceholder() && len(items) > 0 {
		s.Selected = 0
	}
	s.Disabled = len(items) == 0
	return true
}

// Current reports whether token belongs to the latest fetch of level k.
func (c *Chain) Current(k int, token uint64) bool {
	return k >= 0 && k < len(c.tokens) && c.tokens[k] == token
}

// Fail reports whether a failed fetch is the latest one for level k. The level
// stays cleared and disabled either way.
func (c *Chain) Fail(k int, token uint64) bool {
	return c.Current(k, token)
}

// Reset returns the chain to its initial state: the root keeps its options but
// goes back to the placeholder, every other level is cleared and disabled.
func (c *Chain) Reset() {
	if len(c.selects) == 0 {
		return
	}
	root := &c.selects[0]
	root.Selected = -1
	if !root.hasPlaceholder() && len(root.Items) > 0 {
		root.Selected = 0
	}
	c.clearFrom(1)
}

func (c *Chain) clearFrom(k int) {
	for j := k; j < len(c.selects); j++ {
		c.selects[j].clear()
		c.tokens[j]++
	}
}

func indexOf(items []models.SelectableItem, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Years lists every year in [start, end] inclusive. A reversed range is empty.
func Years(start, end int) []models.SelectableItem {
	if start > end {
		return nil
	}
	years := make([]models.SelectableItem, 0, end-start+1)
	for y := start; y <= end; y++ {
		s := strconv.Itoa(y)
		years = append(years, models.SelectableItem{ID: s, DisplayName: s})
	}
	return years
}
