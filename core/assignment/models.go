package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daeshin/schoolhub/core"
)

// Assignment is a graded assessment with a deadline.
type Assignment struct {
	ID          int       `json:"id"`
	Subject     string    `json:"subject"`
	Title       string    `json:"title"`
	Deadline    string    `json:"deadline"` // YYYY-MM-DD
	Description string    `json:"description"`
	CreatorName string    `json:"creator_name"`
	CreatorCode string    `json:"creator_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Subject     string `json:"subject" validate:"required,notblank"`
	Title       string `json:"title" validate:"required,notblank"`
	Deadline    string `json:"deadline" validate:"required,isodate"`
	Description string `json:"description" validate:"required,notblank"`
	CreatorName string `json:"creator_name" validate:"required,notblank"`
	CreatorCode string `json:"creator_code" validate:"required,notblank"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Subject = core.CleanString(na.Subject)
	na.Title = core.CleanString(na.Title)
	na.Deadline = core.CleanString(na.Deadline)
	na.Description = core.CleanString(na.Description)
	na.CreatorName = core.CleanString(na.CreatorName)
	na.CreatorCode = core.CleanString(na.CreatorCode)
	return validate.Struct(na)
}
