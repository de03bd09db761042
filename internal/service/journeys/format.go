package journeys

import (
	"time"

	"github.com/zvrva/journeys/internal/domain"
)

// legTimeLayout is the minute-precision rendering used in journey responses.
const legTimeLayout = "2006-01-02 15:04"

type LegView struct {
	FlightNumber  string `json:"flight_number"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

type JourneyView struct {
	Connections int       `json:"connections"`
	Path        []LegView `json:"path"`
}

// FlightEventView is the flat listing shape; timestamps keep full RFC 3339
// precision, unlike journey legs.
type FlightEventView struct {
	FlightNumber  string    `json:"flight_number"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// FormatJourneys renders journeys for the wire, preserving order.
func FormatJourneys(journeys []domain.Journey) []JourneyView {
	views := make([]JourneyView, 0, len(journeys))
	for _, journey := range journeys {
		path := make([]LegView, 0, len(journey.Legs))
		for _, leg := range journey.Legs {
			path = append(path, LegView{
				FlightNumber:  leg.FlightNumber,
				From:          leg.From,
				To:            leg.To,
				DepartureTime: leg.DepartureTime.Format(legTimeLayout),
				ArrivalTime:   leg.ArrivalTime.Format(legTimeLayout),
			})
		}
		views = append(views, JourneyView{Connections: journey.Connections(), Path: path})
	}
	return views
}

func formatFlightEvents(events []domain.FlightEvent) []FlightEventView {
	views := make([]FlightEventView, 0, len(events))
	for _, event := range events {
		views = append(views, FlightEventView{
			FlightNumber:  event.FlightNumber,
			From:          event.From,
			To:            event.To,
			DepartureTime: event.DepartureTime,
			ArrivalTime:   event.ArrivalTime,
		})
	}
	return views
}
