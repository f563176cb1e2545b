package dashboard

// SnapshotResponse buckets today's verdicts across all employees. Holiday,
// Weekend and Incomplete days fall outside every bucket.
type SnapshotResponse struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	OnLeave int    `json:"on_leave"`
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type AttendanceTrendResponse struct {
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}

type ProductivityPoint struct {
	Date         string  `json:"date"`
	AverageHours float64 `json:"average_hours"`
}

type ProductivityTrendResponse struct {
	Days   int                 `json:"days"`
	Points []ProductivityPoint `json:"points"`
}

type SiteRate struct {
	OrganizationID   string  `json:"organization_id"`
	OrganizationName string  `json:"organization_name"`
	Rate             float64 `json:"rate"`
}

type SiteRatesResponse struct {
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Sites     []SiteRate `json:"sites"`
}
