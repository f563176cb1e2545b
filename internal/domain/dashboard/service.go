package dashboard

import "context"

type Service interface {
	GetSnapshot(ctx context.Context) (SnapshotResponse, error)
	GetAttendanceTrend(ctx context.Context, days int) (AttendanceTrendResponse, error)
	GetProductivityTrend(ctx context.Context, days int) (ProductivityTrendResponse, error)
	GetSiteRates(ctx context.Context) (SiteRatesResponse, error)
}
