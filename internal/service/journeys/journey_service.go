package journeys

import (
	"context"
	"time"

	"github.com/zvrva/journeys/internal/domain"
	"github.com/zvrva/journeys/internal/repository"
)

type SearchUseCase interface {
	Search(ctx context.Context, query SearchQuery) ([]JourneyView, error)
	ListFlightEvents(ctx context.Context) ([]FlightEventView, error)
}

// SearchQuery carries the raw request inputs; codes may be lowercase and the
// date is the unparsed query string.
type SearchQuery struct {
	Date         string
	From         string
	To           string
	MaxWaitHours int
}

type Cache interface {
	GetFlightEvents(ctx context.Context) ([]domain.FlightEvent, error)
	SetFlightEvents(ctx context.Context, events []domain.FlightEvent) error
}

type JourneyService struct {
	events repository.FlightEventRepository
	cities repository.CityRepository
	cache  Cache
}

func NewJourneyService(events repository.FlightEventRepository, cities repository.CityRepository, cache Cache) *JourneyService {
	return &JourneyService{events: events, cities: cities, cache: cache}
}

// Search validates the query (date format, then origin city, then destination
// city), finds all qualifying journeys and renders them for the wire.
// Validation failures come back as FormatError or NotFoundError.
func (s *JourneyService) Search(ctx context.Context, query SearchQuery) ([]JourneyView, error) {
	if err := ValidateDateFormat(query.Date, DateLayout); err != nil {
		return nil, err
	}
	if err := s.validateCity(ctx, query.From); err != nil {
		return nil, err
	}
	if err := s.validateCity(ctx, query.To); err != nil {
		return nil, err
	}

	day, err := time.Parse(DateLayout, query.Date)
	if err != nil {
		return nil, &domain.FormatError{Message: "Invalid date format. Should be YYYY-MM-DD."}
	}

	journeys, err := s.FindJourneys(ctx, day, query.From, query.To, time.Duration(query.MaxWaitHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return FormatJourneys(journeys), nil
}

// ListFlightEvents returns every stored event in insertion order, read through
// the listing cache when one is configured. Cache failures fall back to the
// store.
func (s *JourneyService) ListFlightEvents(ctx context.Context) ([]FlightEventView, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightEvents(ctx); err == nil && cached != nil {
			return formatFlightEvents(cached), nil
		}
	}

	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlightEvents(ctx, events)
	}
	return formatFlightEvents(events), nil
}

var _ SearchUseCase = (*JourneyService)(nil)
