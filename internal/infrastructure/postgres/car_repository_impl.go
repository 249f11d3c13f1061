package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
)

type CarRepository struct {
	pool *pgxpool.Pool
}

func NewCarRepository(pool *pgxpool.Pool) *CarRepository {
	return &CarRepository{pool: pool}
}

const carColumns = `id, make, model, year, price, mileage, color, fuel_type, transmission,
	body_type, seats, description, status, featured, images, created_at, updated_at`

func scanCar(row pgx.Row) (*entity.Car, error) {
	c := &entity.Car{}
	if err := row.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Price, &c.Mileage, &c.Color,
		&c.FuelType, &c.Transmission, &c.BodyType, &c.Seats, &c.Description,
		&c.Status, &c.Featured, &c.Images, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CarRepository) Create(ctx context.Context, c *entity.Car) error {
	if c.Status == "" {
		c.Status = entity.CarStatusAvailable
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO cars (id, make, model, year, price, mileage, color, fuel_type,
			transmission, body_type, seats, description, status, featured, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`, c.ID, c.Make, c.Model, c.Year, c.Price, c.Mileage, c.Color, c.FuelType,
		c.Transmission, c.BodyType, c.Seats, c.Description, c.Status, c.Featured, c.Images)

	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CarRepository) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	return scanCar(r.pool.QueryRow(ctx, `
		SELECT `+carColumns+`
		FROM cars
		WHERE id = $1
	`, id))
}

func (r *CarRepository) List(ctx context.Context, search string) ([]entity.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars`
	args := []any{}
	if search != "" {
		query += `
		WHERE make ILIKE $1 OR model ILIKE $1 OR color ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += `
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func (r *CarRepository) ListFeatured(ctx context.Context, limit int) ([]entity.Car, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+carColumns+`
		FROM cars
		WHERE featured = true AND status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, entity.CarStatusAvailable, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func (r *CarRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateStatus writes only the fields present in the patch.
func (r *CarRepository) UpdateStatus(ctx context.Context, id string, patch repository.StatusPatch) error {
	set := ""
	args := []any{}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		set += "status = $" + strconv.Itoa(len(args))
	}
	if patch.Featured != nil {
		if set != "" {
			set += ", "
		}
		args = append(args, *patch.Featured)
		set += "featured = $" + strconv.Itoa(len(args))
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE cars SET %s, updated_at = now() WHERE id = $%d`, set, len(args))

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectCars(rows pgx.Rows) ([]entity.Car, error) {
	cars := make([]entity.Car, 0)
	for rows.Next() {
		c := entity.Car{}
		if err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Price, &c.Mileage, &c.Color,
			&c.FuelType, &c.Transmission, &c.BodyType, &c.Seats, &c.Description,
			&c.Status, &c.Featured, &c.Images, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

var _ repository.CarRepository = (*CarRepository)(nil)
