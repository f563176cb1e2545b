package attendance

import (
	"context"

	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
)

type Service interface {
	// GetUserRecords reconciles one user's attendance over an inclusive date
	// range into ordered daily records.
	GetUserRecords(ctx context.Context, req RecordRangeRequest) (RecordRangeResponse, error)

	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	ListHolidays(ctx context.Context) ([]holiday.Response, error)
	AddHoliday(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error)
	RemoveHoliday(ctx context.Context, id string) error
}
