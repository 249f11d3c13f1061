package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
)

type DealershipRepository struct {
	pool *pgxpool.Pool
}

func NewDealershipRepository(pool *pgxpool.Pool) *DealershipRepository {
	return &DealershipRepository{pool: pool}
}

// hoursOrder sorts rows Monday..Sunday in SQL.
const hoursOrder = `array_position(
	ARRAY['MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY'], day_of_week)`

func (r *DealershipRepository) Get(ctx context.Context) (*entity.DealershipInfo, error) {
	d := &entity.DealershipInfo{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, address, phone, email, created_at, updated_at
		FROM dealership_info
		LIMIT 1
	`)
	if err := row.Scan(&d.ID, &d.Name, &d.Address, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	hours, err := r.loadHours(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.WorkingHours = hours
	return d, nil
}

func (r *DealershipRepository) Create(ctx context.Context, info *entity.DealershipInfo, hours []entity.WorkingHour) (*entity.DealershipInfo, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO dealership_info (name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, info.Name, info.Address, info.Phone, info.Email)
	if err := row.Scan(&info.ID, &info.CreatedAt, &info.UpdatedAt); err != nil {
		return nil, err
	}

	if err := insertHours(ctx, tx, info.ID, hours); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx)
}

// ReplaceWorkingHours swaps the full weekly schedule in one transaction, so
// a failed insert never leaves the dealership without hours.
func (r *DealershipRepository) ReplaceWorkingHours(ctx context.Context, dealershipID string, hours []entity.WorkingHour) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM working_hours WHERE dealership_id = $1`, dealershipID); err != nil {
		return err
	}
	if err := insertHours(ctx, tx, dealershipID, hours); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertHours(ctx context.Context, tx pgx.Tx, dealershipID string, hours []entity.WorkingHour) error {
	for _, h := range hours {
		if _, err := tx.Exec(ctx, `
			INSERT INTO working_hours (dealership_id, day_of_week, open_time, close_time, is_open)
			VALUES ($1, $2, $3, $4, $5)
		`, dealershipID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen); err != nil {
			return err
		}
	}
	return nil
}

func (r *DealershipRepository) loadHours(ctx context.Context, dealershipID string) ([]entity.WorkingHour, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, dealership_id, day_of_week, open_time, close_time, is_open
		FROM working_hours
		WHERE dealership_id = $1
		ORDER BY `+hoursOrder+`
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]entity.WorkingHour, 0, 7)
	for rows.Next() {
		h := entity.WorkingHour{}
		if err := rows.Scan(&h.ID, &h.DealershipID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.IsOpen); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

var _ repository.DealershipRepository = (*DealershipRepository)(nil)
