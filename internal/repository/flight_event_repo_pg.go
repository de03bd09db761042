package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/journeys/internal/domain"
)

const flightEventColumns = `fe.id, f.number, dc.code, ac.code, fe.departure_time, fe.arrival_time
	FROM flight_events fe
	JOIN flights f ON f.id = fe.flight_id
	JOIN cities dc ON dc.id = fe.departure_city_id
	JOIN cities ac ON ac.id = fe.arrival_city_id`

type FlightEventRepository interface {
	ListAll(ctx context.Context) ([]domain.FlightEvent, error)
	FindDepartures(ctx context.Context, day time.Time, originCode string) ([]domain.FlightEvent, error)
	FindConnections(ctx context.Context, originCode, destinationCode string, after time.Time) ([]domain.FlightEvent, error)
	Create(ctx context.Context, event domain.FlightEvent) (int64, error)
}

type PGFlightEventRepository struct {
	db *pgxpool.Pool
}

func NewFlightEventRepository(db *pgxpool.Pool) FlightEventRepository {
	return &PGFlightEventRepository{db: db}
}

func (r *PGFlightEventRepository) ListAll(ctx context.Context) ([]domain.FlightEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightEventColumns+` ORDER BY fe.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlightEvents(rows)
}

// FindDepartures returns events leaving originCode on the calendar day that
// starts at day. The window is half-open so a midnight departure belongs to
// the day it starts.
func (r *PGFlightEventRepository) FindDepartures(ctx context.Context, day time.Time, originCode string) ([]domain.FlightEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightEventColumns+`
	WHERE dc.code = $1 AND fe.departure_time >= $2 AND fe.departure_time < $3
	ORDER BY fe.id`, originCode, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlightEvents(rows)
}

// FindConnections returns events leaving originCode for destinationCode
// strictly after the given instant.
func (r *PGFlightEventRepository) FindConnections(ctx context.Context, originCode, destinationCode string, after time.Time) ([]domain.FlightEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightEventColumns+`
	WHERE dc.code = $1 AND ac.code = $2 AND fe.departure_time > $3
	ORDER BY fe.id`, originCode, destinationCode, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlightEvents(rows)
}

// Create resolves the flight and city codes to rows and inserts the event.
// The caller is expected to have run domain validation first; database
// constraint violations still come back as ConstraintError.
func (r *PGFlightEventRepository) Create(ctx context.Context, event domain.FlightEvent) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO flight_events (flight_id, departure_city_id, arrival_city_id, departure_time, arrival_time)
	SELECT f.id, dc.id, ac.id, $4, $5
	FROM flights f, cities dc, cities ac
	WHERE f.number = $1 AND dc.code = $2 AND ac.code = $3
	RETURNING id`, event.FlightNumber, event.From, event.To, event.DepartureTime, event.ArrivalTime).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

func scanFlightEvents(rows pgx.Rows) ([]domain.FlightEvent, error) {
	events := make([]domain.FlightEvent, 0)
	for rows.Next() {
		var e domain.FlightEvent
		if err := rows.Scan(&e.ID, &e.FlightNumber, &e.From, &e.To, &e.DepartureTime, &e.ArrivalTime); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var _ FlightEventRepository = (*PGFlightEventRepository)(nil)
