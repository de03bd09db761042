package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/zvrva/journeys/internal/domain"
	"github.com/zvrva/journeys/internal/repository"
)

// FlightEventRecord is the wire shape of one bulk-entry record.
type FlightEventRecord struct {
	FlightNumber  string    `json:"flight_number"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type Cache interface {
	InvalidateFlightEvents(ctx context.Context) error
}

// Importer persists administratively-entered flight events. Flights are
// created on first sight; cities and countries must already exist.
type Importer struct {
	events  repository.FlightEventRepository
	cities  repository.CityRepository
	flights repository.FlightRepository
	cache   Cache
	log     zerolog.Logger
}

func NewImporter(events repository.FlightEventRepository, cities repository.CityRepository, flights repository.FlightRepository, cache Cache, log zerolog.Logger) *Importer {
	return &Importer{events: events, cities: cities, flights: flights, cache: cache, log: log}
}

// Import validates and stores a single record. NotFoundError and
// ConstraintError mark the record itself as bad; any other error is a store
// failure the caller should treat as fatal.
func (i *Importer) Import(ctx context.Context, record FlightEventRecord) error {
	event := domain.FlightEvent{
		FlightNumber:  domain.NormalizeCode(record.FlightNumber),
		From:          domain.NormalizeCode(record.From),
		To:            domain.NormalizeCode(record.To),
		DepartureTime: record.DepartureTime,
		ArrivalTime:   record.ArrivalTime,
	}

	for _, code := range []string{event.From, event.To} {
		exists, err := i.cities.ExistsByCode(ctx, code)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Message: fmt.Sprintf("City with code %q does not exist.", code)}
		}
	}

	if err := event.Validate(); err != nil {
		return err
	}

	if _, err := i.flights.EnsureByNumber(ctx, event.FlightNumber); err != nil {
		return err
	}

	id, err := i.events.Create(ctx, event)
	if err != nil {
		return err
	}

	if i.cache != nil {
		if err := i.cache.InvalidateFlightEvents(ctx); err != nil {
			i.log.Warn().Err(err).Msg("invalidate listing cache")
		}
	}

	i.log.Info().
		Int64("event_id", id).
		Str("flight_number", event.FlightNumber).
		Str("from", event.From).
		Str("to", event.To).
		Msg("flight event imported")
	return nil
}
