package catalog

import "errors"

var (
	// ErrUnknownEquipment is returned when equipment is not in the catalog
	ErrUnknownEquipment = errors.New("catalog: unknown equipment")

	// ErrDuplicateEquipment is returned at load time for repeated equipment names
	ErrDuplicateEquipment = errors.New("catalog: duplicate equipment name")

	// ErrDuplicateSlot is returned at load time for repeated slot names within one device
	ErrDuplicateSlot = errors.New("catalog: duplicate slot name")

	// ErrEmptyName is returned at load time for blank equipment or slot names
	ErrEmptyName = errors.New("catalog: empty name")
)
