package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, user_id, occurred_at, event_type, latitude, longitude`

// ListByUserAndRange implements attendance.EventRepository.
func (r *eventRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE user_id = $1
		  AND occurred_at >= $2
		  AND occurred_at < $3
		ORDER BY occurred_at ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByRange implements attendance.EventRepository.
func (r *eventRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE occurred_at >= $1
		  AND occurred_at < $2
		ORDER BY user_id, occurred_at ASC
	`

	rows, err := q.Query(ctx, query, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.Type, &e.Latitude, &e.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}
