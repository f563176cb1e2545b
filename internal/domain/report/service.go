package report

import "context"

type Service interface {
	GenerateMuster(ctx context.Context, req MusterRequest) (MusterReport, error)
	GenerateCustomLog(ctx context.Context, req CustomLogRequest) (CustomLogReport, error)
}
