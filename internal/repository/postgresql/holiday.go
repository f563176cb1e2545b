package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// List implements holiday.Repository.
func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, holiday_date, name FROM holidays ORDER BY holiday_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// ListByRange implements holiday.Repository.
func (r *holidayRepository) ListByRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, name
		FROM holidays
		WHERE holiday_date >= $1 AND holiday_date <= $2
		ORDER BY holiday_date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO holidays (id, holiday_date, name) VALUES ($1, $2, $3)`,
		h.ID, h.Date, h.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// Delete implements holiday.Repository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

func scanHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}
