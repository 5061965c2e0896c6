package compute_availability

import "github.com/kairovix/labsched/internal/domain"

// groupBySlot buckets one equipment's reservations by slot label.
// Unslotted reservations (nil slot) land under the anonymous label.
func groupBySlot(reservations []*domain.Reservation) map[string][]*domain.Reservation {
	grouped := make(map[string][]*domain.Reservation)
	for _, r := range reservations {
		label := r.SlotLabel()
		grouped[label] = append(grouped[label], r)
	}
	return grouped
}

// conflictsFor returns the reservations in group whose intervals overlap the
// requested one, under the shared half-open predicate. Adjacent back-to-back
// reservations are not conflicts.
func conflictsFor(requested domain.TimeInterval, group []*domain.Reservation) []*domain.Reservation {
	var conflicts []*domain.Reservation
	for _, r := range group {
		if requested.Overlaps(r.Interval) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}
