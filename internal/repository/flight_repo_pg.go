package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/journeys/internal/domain"
)

type FlightRepository interface {
	EnsureByNumber(ctx context.Context, number string) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// EnsureByNumber inserts the flight if it is not known yet and returns its id
// either way. Used by the bulk ingestion path, where events arrive keyed by
// flight number alone.
func (r *PGFlightRepository) EnsureByNumber(ctx context.Context, number string) (int64, error) {
	number = domain.NormalizeCode(number)
	if err := (domain.Flight{Number: number}).Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO flights (number) VALUES ($1)
	ON CONFLICT (number) DO UPDATE SET number = EXCLUDED.number
	RETURNING id`, number).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
