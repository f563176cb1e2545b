package report

import "errors"

var (
	// ErrNoEmployeesMatched rejects report generation before any per-employee
	// computation runs; no partial report is ever emitted.
	ErrNoEmployeesMatched = errors.New("no employees matched the report selection")
)
