package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daeshin/schoolhub/core"
)

// Periods are the evening self-study slots a student can be excused from.
var Periods = []int{1, 2, 3}

// Record is one excused period for one student on one date.
type Record struct {
	ID            int       `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Period        int       `json:"period"`
	StudentName   string    `json:"student_name"`
	StudentCode   string    `json:"student_code"`
	StudentNumber string    `json:"student_number"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBatch contains information needed to record a student's absence for several periods of a date.
type NewBatch struct {
	Date          string `json:"date" validate:"required,isodate"`
	Periods       []int  `json:"periods" validate:"required,min=1,unique,dive,period"`
	StudentName   string `json:"student_name" validate:"required,notblank"`
	StudentCode   string `json:"student_code" validate:"required,notblank"`
	StudentNumber string `json:"student_number" validate:"required,notblank"`
	Reason        string `json:"reason" validate:"required,notblank"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Date = core.CleanString(nb.Date)
	nb.StudentName = core.CleanString(nb.StudentName)
	nb.StudentCode = core.CleanString(nb.StudentCode)
	nb.StudentNumber = core.CleanString(nb.StudentNumber)
	nb.Reason = core.CleanString(nb.Reason)
	return validate.Struct(nb)
}

// Records expands the batch into one Record per period.
func (nb NewBatch) Records(now time.Time) []Record {
	recs := make([]Record, 0, len(nb.Periods))
	for _, p := range nb.Periods {
		recs = append(recs, Record{
			Date:          nb.Date,
			Period:        p,
			StudentName:   nb.StudentName,
			StudentCode:   nb.StudentCode,
			StudentNumber: nb.StudentNumber,
			Reason:        nb.Reason,
			CreatedAt:     now,
		})
	}
	return recs
}

// Filter narrows statistics to an inclusive date range. Empty bounds are open.
type Filter struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,isodate"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,isodate"`
}

func (f *Filter) Validate(validate *validator.Validate) error {
	f.StartDate = core.CleanString(f.StartDate)
	f.EndDate = core.CleanString(f.EndDate)
	return validate.Struct(f)
}

// Entry is how a Record is listed under its period bucket.
type Entry struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	StudentNumber string `json:"studentNumber"`
	Reason        string `json:"reason"`
}

// Buckets groups a date's records by period. Periods 1, 2 and 3 are always present.
type Buckets map[int][]Entry

// NewBuckets groups recs by period, keeping their order within each period.
func NewBuckets(recs []Record) Buckets {
	b := make(Buckets, len(Periods))
	for _, p := range Periods {
		b[p] = []Entry{}
	}
	for _, r := range recs {
		b[r.Period] = append(b[r.Period], Entry{
			ID:            r.ID,
			Name:          r.StudentName,
			Code:          r.StudentCode,
			StudentNumber: r.StudentNumber,
			Reason:        r.Reason,
		})
	}
	return b
}
