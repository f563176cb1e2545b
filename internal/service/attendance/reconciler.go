package attendance

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
)

// Reconcile drives the classifier across an inclusive date range for one
// user. It returns exactly one record per calendar day, gap-free and in date
// order, plus any data-gap anomalies the classifier flagged along the way.
func Reconcile(userID string, start, end time.Time, events []attendance.Event, approvedLeaves []leave.LeaveRequest, snap Snapshot) ([]attendance.DailyRecord, []attendance.Anomaly, error) {
	startDay := attendance.TruncateToDay(start)
	endDay := attendance.TruncateToDay(end)

	if endDay.Before(startDay) {
		return nil, nil, attendance.ErrEndBeforeStart
	}

	// Bucket events by the calendar day they fall on, in the zone they were
	// recorded.
	eventsByDay := make(map[string][]attendance.Event, len(events))
	for _, ev := range events {
		key := ev.Timestamp.Format("2006-01-02")
		eventsByDay[key] = append(eventsByDay[key], ev)
	}

	var (
		records   []attendance.DailyRecord
		anomalies []attendance.Anomaly
	)

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		dayEvents := eventsByDay[day.Format("2006-01-02")]

		rec, recAnomalies := Classify(userID, day, dayEvents, approvedLeaves, snap)
		records = append(records, rec)
		anomalies = append(anomalies, recAnomalies...)
	}

	return records, anomalies, nil
}

// UserInputs carries one user's pre-fetched raw data into a batch run.
type UserInputs struct {
	Events []attendance.Event
	Leaves []leave.LeaveRequest
}

// ReconcileUsers runs per-user reconciliation concurrently on a bounded
// worker pool and merges the results in employee-ID order, so the output
// never depends on completion order. A non-positive limit falls back to the
// number of CPUs.
func ReconcileUsers(ctx context.Context, userIDs []string, inputs map[string]UserInputs, start, end time.Time, snap Snapshot, limit int) (map[string][]attendance.DailyRecord, []attendance.Anomaly, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	ids := make([]string, len(userIDs))
	copy(ids, userIDs)
	sort.Strings(ids)

	perUserRecords := make([][]attendance.DailyRecord, len(ids))
	perUserAnomalies := make([][]attendance.Anomaly, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			in := inputs[id]
			records, anomalies, err := Reconcile(id, start, end, in.Events, in.Leaves, snap)
			if err != nil {
				return err
			}
			perUserRecords[i] = records
			perUserAnomalies[i] = anomalies
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	results := make(map[string][]attendance.DailyRecord, len(ids))
	var anomalies []attendance.Anomaly
	for i, id := range ids {
		results[id] = perUserRecords[i]
		anomalies = append(anomalies, perUserAnomalies[i]...)
	}

	return results, anomalies, nil
}

// GroupInputs splits range-wide event and leave fetches into per-user inputs.
func GroupInputs(events []attendance.Event, leaves []leave.LeaveRequest) map[string]UserInputs {
	grouped := make(map[string]UserInputs)

	for _, ev := range events {
		in := grouped[ev.UserID]
		in.Events = append(in.Events, ev)
		grouped[ev.UserID] = in
	}

	for _, lr := range leaves {
		in := grouped[lr.UserID]
		in.Leaves = append(in.Leaves, lr)
		grouped[lr.UserID] = in
	}

	return grouped
}
