package recordform

import (
	"sync"

	"github.com/noah-isme/care-record-api/internal/dto"
)

// SelectionContext is the shared (patient, record) selection. Writers either
// replace the whole value or derive it from the previous one; nobody may assume
// exclusive knowledge of the current value.
type SelectionContext interface {
	Selection() dto.Selection
	SetSelection(next dto.Selection)
	UpdateSelection(fn func(prev dto.Selection) dto.Selection) dto.Selection
}

// Cell is an in-process SelectionContext safe for concurrent use.
type Cell struct {
	mu    sync.RWMutex
	value dto.Selection
}

// NewCell returns a cell holding initial.
func NewCell(initial dto.Selection) *Cell {
	return &Cell{value: initial}
}

// Selection returns the current value.
func (c *Cell) Selection() dto.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// SetSelection replaces the value.
func (c *Cell) SetSelection(next dto.Selection) {
	c.mu.Lock()
	c.value = next
	c.mu.Unlock()
}

// UpdateSelection applies fn to the current value under the lock and stores the result.
func (c *Cell) UpdateSelection(fn func(prev dto.Selection) dto.Selection) dto.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	return c.value
}
