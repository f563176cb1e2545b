package holiday

import (
	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

type CreateRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func MapToResponse(h Holiday) Response {
	return Response{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
