package domain

import (
	"regexp"
	"strings"
	"time"
)

// MaxFlightDuration bounds how long a single scheduled flight may take.
const MaxFlightDuration = 24 * time.Hour

var (
	countryCodeRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	cityCodeRe     = regexp.MustCompile(`^[A-Z]{3}$`)
	flightNumberRe = regexp.MustCompile(`^[A-Z]{2}\d{4}$`)
)

type Country struct {
	ID   int64
	Code string // ISO 3166-1 alpha-2
	Name string
}

func (c Country) Validate() error {
	if !countryCodeRe.MatchString(c.Code) {
		return &ConstraintError{Message: "Country code must be 2 characters long and uppercase"}
	}
	return nil
}

type City struct {
	ID        int64
	Code      string
	Name      string
	CountryID int64
}

func (c City) Validate() error {
	if !cityCodeRe.MatchString(c.Code) {
		return &ConstraintError{Message: "City code must be 3 characters long and uppercase"}
	}
	return nil
}

// Flight is a route/carrier identifier reused across many scheduled instances.
type Flight struct {
	ID     int64
	Number string
}

func (f Flight) Validate() error {
	if !flightNumberRe.MatchString(f.Number) {
		return &ConstraintError{Message: "Flight number must be 2 uppercase letters followed by 4 digits"}
	}
	return nil
}

// FlightEvent is one scheduled instance of a Flight. City references are
// carried as codes; the store resolves them to rows on write.
type FlightEvent struct {
	ID            int64
	FlightNumber  string
	From          string // departure city code
	To            string // arrival city code
	DepartureTime time.Time
	ArrivalTime   time.Time
}

func (e FlightEvent) Duration() time.Duration {
	return e.ArrivalTime.Sub(e.DepartureTime)
}

// Validate enforces the scheduling invariants before an event is persisted.
func (e FlightEvent) Validate() error {
	if e.DepartureTime.After(e.ArrivalTime) {
		return &ConstraintError{Message: "Departure time cannot be later than arrival time."}
	}
	if e.Duration() == 0 {
		return &ConstraintError{Message: "Flight duration cannot be zero."}
	}
	if e.Duration() > MaxFlightDuration {
		return &ConstraintError{Message: "Flight duration cannot exceed 24 hours."}
	}
	return nil
}

// NormalizeCode uppercases a country/city/flight identifier before it is
// validated or matched against stored rows.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
