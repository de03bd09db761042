package domain

// Journey is a derived sequence of 1 or 2 flight events connecting an origin
// to a destination on a given date. It is never persisted.
type Journey struct {
	Legs []FlightEvent
}

// Connections reports the wire-level connection count: 0 for a direct
// journey, otherwise the number of legs.
func (j Journey) Connections() int {
	if len(j.Legs) == 1 {
		return 0
	}
	return len(j.Legs)
}
