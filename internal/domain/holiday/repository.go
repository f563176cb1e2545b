package holiday

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Holiday, error)
	ListByRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
