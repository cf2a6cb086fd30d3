package booking

import (
	"fmt"
	"strings"
	"time"
)

const slotLayout = "15:04"

// NormalizeSlot reduces a slot label to its 5-character "HH:MM" key.
// Booking forms historically submit either "10:00" or "10:00 - 11:00";
// both must compare equal or the conflict check misses real collisions.
// Normalizing an already-normalized label is a no-op.
func NormalizeSlot(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "-"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// ValidSlot reports whether the label is a well-formed "HH:MM" time after
// normalization.
func ValidSlot(s string) bool {
	_, err := time.Parse(slotLayout, NormalizeSlot(s))
	return err == nil
}

// SlotTemplate generates the full set of offerable slot labels between the
// configured opening and closing times, stepping by slotMinutes. A slot whose
// end would run past closing time is not offered.
func SlotTemplate(openTime, closeTime string, slotMinutes int) ([]string, error) {
	open, err := time.Parse(slotLayout, openTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open time %q: %w", openTime, err)
	}
	close, err := time.Parse(slotLayout, closeTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close time %q: %w", closeTime, err)
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %d", slotMinutes)
	}

	step := time.Duration(slotMinutes) * time.Minute

	slots := make([]string, 0)
	for cur := open; cur.Before(close); cur = cur.Add(step) {
		if cur.Add(step).After(close) {
			break
		}
		slots = append(slots, cur.Format(slotLayout))
	}

	return slots, nil
}

// SubtractBooked returns the template slots that no active booking occupies.
// Booked labels are normalized before comparison.
func SubtractBooked(template []string, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[NormalizeSlot(b)] = struct{}{}
	}

	free := make([]string, 0, len(template))
	for _, slot := range template {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}

	return free
}
