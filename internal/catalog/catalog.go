// Package catalog holds the static description of bookable lab equipment.
// The catalog is built once at startup and read-only thereafter, so adding a
// slotted device is a configuration change, not a code change.
package catalog

import (
	"fmt"
	"strings"

	"github.com/kairovix/labsched/internal/domain"
)

// Catalog is the immutable equipment registry
type Catalog struct {
	byName  map[string]*domain.Equipment
	ordered []*domain.Equipment
}

// Entry is one configured device; a non-empty slot list makes it slotted
type Entry struct {
	Name  string
	Slots []string
}

// New validates entries and builds the catalog
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		byName:  make(map[string]*domain.Equipment, len(entries)),
		ordered: make([]*domain.Equipment, 0, len(entries)),
	}

	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: equipment name", ErrEmptyName)
		}
		if _, exists := c.byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEquipment, name)
		}

		eq := &domain.Equipment{
			Name:     name,
			Category: domain.CategoryUnslotted,
		}

		if len(e.Slots) > 0 {
			eq.Category = domain.CategorySlotted
			seen := make(map[string]struct{}, len(e.Slots))
			for _, s := range e.Slots {
				slot := strings.TrimSpace(s)
				if slot == "" {
					return nil, fmt.Errorf("%w: slot of %q", ErrEmptyName, name)
				}
				if _, dup := seen[slot]; dup {
					return nil, fmt.Errorf("%w: %q of %q", ErrDuplicateSlot, slot, name)
				}
				seen[slot] = struct{}{}
				eq.Slots = append(eq.Slots, slot)
			}
		}

		c.byName[name] = eq
		c.ordered = append(c.ordered, eq)
	}

	return c, nil
}

// Get returns the equipment by name
func (c *Catalog) Get(name string) (*domain.Equipment, error) {
	eq, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, name)
	}
	return eq, nil
}

// IsSlotted reports whether the named equipment is divided into slots
func (c *Catalog) IsSlotted(name string) (bool, error) {
	eq, err := c.Get(name)
	if err != nil {
		return false, err
	}
	return eq.IsSlotted(), nil
}

// SlotsOf returns the ordered slot labels of the named equipment,
// a single anonymous slot for unslotted devices
func (c *Catalog) SlotsOf(name string) ([]string, error) {
	eq, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return eq.BookableSlots(), nil
}

// List returns every device in configuration order
func (c *Catalog) List() []*domain.Equipment {
	out := make([]*domain.Equipment, len(c.ordered))
	copy(out, c.ordered)
	return out
}
