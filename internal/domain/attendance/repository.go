package attendance

import (
	"context"
	"time"
)

type EventRepository interface {
	// ListByUserAndRange returns all events for one user whose timestamps fall
	// within [start, end] calendar days, ordered by timestamp.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]Event, error)

	// ListByRange returns all events for all users in the range, ordered by
	// user then timestamp.
	ListByRange(ctx context.Context, start, end time.Time) ([]Event, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}
