package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/journeys/internal/domain"
)

type CountryRepository interface {
	Create(ctx context.Context, country domain.Country) (int64, error)
}

type PGCountryRepository struct {
	db *pgxpool.Pool
}

func NewCountryRepository(db *pgxpool.Pool) CountryRepository {
	return &PGCountryRepository{db: db}
}

func (r *PGCountryRepository) Create(ctx context.Context, country domain.Country) (int64, error) {
	country.Code = domain.NormalizeCode(country.Code)
	if err := country.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO countries (code, name) VALUES ($1, $2) RETURNING id`,
		country.Code, country.Name).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

var _ CountryRepository = (*PGCountryRepository)(nil)
