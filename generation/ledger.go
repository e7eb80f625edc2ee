package generation

import "roomforge/geom"

// Reservation is a circular exclusion zone left by one placement
type Reservation struct {
	Position geom.Vec2 `json:"position"`
	Radius   float64   `json:"radius"`
}

// Ledger records the reservations of the current pass
type Ledger struct {
	entries []Reservation
}

// Register adds a reservation. Non-positive radii are ignored.
func (l *Ledger) Register(pos geom.Vec2, radius float64) bool {
	if radius <= 0 {
		return false
	}
	l.entries = append(l.entries, Reservation{Position: pos, Radius: radius})
	return true
}

// IsReserved reports whether a circle at pos with radius overlaps any entry.
// The query radius is never below geom.Epsilon.
func (l *Ledger) IsReserved(pos geom.Vec2, radius float64) bool {
	r := max(geom.Epsilon, radius)
	for _, e := range l.entries {
		if geom.CirclesOverlap(pos, r, e.Position, e.Radius) {
			return true
		}
	}
	return false
}

// Clear drops every reservation
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}

// Len returns the number of reservations
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the reservations in registration order
func (l *Ledger) Entries() []Reservation {
	out := make([]Reservation, len(l.entries))
	copy(out, l.entries)
	return out
}
