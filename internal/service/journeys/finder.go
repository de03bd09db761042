package journeys

import (
	"context"
	"time"

	"github.com/zvrva/journeys/internal/domain"
)

// FindJourneys returns every direct and one-connection journey from origin to
// destination departing on the given calendar day. Results keep insertion
// order: direct journeys first, in store order, then connecting ones. No
// sorting by departure time is applied.
func (s *JourneyService) FindJourneys(ctx context.Context, day time.Time, origin, destination string, maxWait time.Duration) ([]domain.Journey, error) {
	origin = domain.NormalizeCode(origin)
	destination = domain.NormalizeCode(destination)

	initial, err := s.events.FindDepartures(ctx, day, origin)
	if err != nil {
		return nil, err
	}

	journeys := make([]domain.Journey, 0)

	// Direct journeys. The duration filter repeats an entity invariant, kept
	// as a defensive check on whatever the store returns.
	for _, event := range initial {
		if event.To == destination && event.Duration() <= domain.MaxFlightDuration {
			journeys = append(journeys, domain.Journey{Legs: []domain.FlightEvent{event}})
		}
	}

	// Connecting journeys. Events already arriving at the destination are
	// excluded so a direct match is never counted twice.
	for _, leg1 := range initial {
		if leg1.To == destination {
			continue
		}

		candidates, err := s.events.FindConnections(ctx, leg1.To, destination, leg1.ArrivalTime)
		if err != nil {
			return nil, err
		}

		for _, leg2 := range candidates {
			wait := leg2.DepartureTime.Sub(leg1.ArrivalTime)
			total := leg2.ArrivalTime.Sub(leg1.DepartureTime)
			if wait <= maxWait && total <= domain.MaxFlightDuration {
				journeys = append(journeys, domain.Journey{Legs: []domain.FlightEvent{leg1, leg2}})
			}
		}
	}

	return journeys, nil
}
