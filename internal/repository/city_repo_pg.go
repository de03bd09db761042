package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/journeys/internal/domain"
)

type CityRepository interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, city domain.City) (int64, error)
}

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

func (r *PGCityRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cities WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGCityRepository) Create(ctx context.Context, city domain.City) (int64, error) {
	city.Code = domain.NormalizeCode(city.Code)
	if err := city.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO cities (code, name, country_id) VALUES ($1, $2, $3) RETURNING id`,
		city.Code, city.Name, city.CountryID).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

var _ CityRepository = (*PGCityRepository)(nil)
