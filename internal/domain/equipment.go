package domain

// EquipmentCategory tells whether a device is booked as a whole or per named slot
type EquipmentCategory string

const (
	// CategoryUnslotted equipment is a single bookable unit (one implicit anonymous slot)
	CategoryUnslotted EquipmentCategory = "unslotted"
	// CategorySlotted equipment is divided into independently bookable named slots
	CategorySlotted EquipmentCategory = "slotted"
)

// Equipment describes one piece of bookable lab hardware.
// The equipment set is static configuration, immutable after startup.
type Equipment struct {
	Name     string
	Category EquipmentCategory
	Slots    []string // ordered, non-empty iff Category is CategorySlotted
}

// IsSlotted returns true if the equipment is divided into named slots
func (e *Equipment) IsSlotted() bool {
	return e.Category == CategorySlotted
}

// HasSlot reports whether name is one of the equipment's slot labels
func (e *Equipment) HasSlot(name string) bool {
	for _, s := range e.Slots {
		if s == name {
			return true
		}
	}
	return false
}

// BookableSlots returns the slot labels conflicts are evaluated against.
// Unslotted equipment collapses to a single anonymous slot.
func (e *Equipment) BookableSlots() []string {
	if !e.IsSlotted() {
		return []string{AnonymousSlot}
	}
	return e.Slots
}
