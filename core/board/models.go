package board

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daeshin/schoolhub/core"
)

type (
	// Board is an activity students sign up for, limited to MaxMembers.
	Board struct {
		ID          int       `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		MaxMembers  int       `json:"max_members"`
		CreatorName string    `json:"creator_name"`
		CreatorCode string    `json:"creator_code"`
		CreatedAt   time.Time `json:"created_at"`
		Members     []Member  `json:"-"` // ordered by JoinedAt
	}

	Member struct {
		Name     string    `json:"name"`
		Code     string    `json:"code"`
		JoinedAt time.Time `json:"joined_at"`
	}
)

func (b Board) IsFull() bool {
	return len(b.Members) >= b.MaxMembers
}

func (b Board) HasMember(name string) bool {
	for _, m := range b.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// CanJoin reports why name may not join b, if at all.
func (b Board) CanJoin(name string) error {
	if b.IsFull() {
		return ErrFull
	}
	if b.HasMember(name) {
		return ErrAlreadyJoined
	}
	return nil
}

// Summary is how a Board is listed.
type Summary struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	MaxMembers     int      `json:"max_members"`
	CreatorName    string   `json:"creator_name"`
	CurrentMembers int      `json:"current_members"`
	Members        []string `json:"members"`
}

func NewSummary(b Board) Summary {
	names := make([]string, 0, len(b.Members))
	for _, m := range b.Members {
		names = append(names, m.Name)
	}
	return Summary{
		ID:             b.ID,
		Title:          b.Title,
		Description:    b.Description,
		MaxMembers:     b.MaxMembers,
		CreatorName:    b.CreatorName,
		CurrentMembers: len(b.Members),
		Members:        names,
	}
}

// NewBoard contains information needed to create a new Board.
type NewBoard struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	MaxMembers  int    `json:"max_members" validate:"required,min=1"`
	CreatorName string `json:"creator_name" validate:"required,notblank"`
	CreatorCode string `json:"creator_code" validate:"required,notblank"`
}

func (nb *NewBoard) Validate(validate *validator.Validate) error {
	nb.Title = core.CleanString(nb.Title)
	nb.Description = core.CleanString(nb.Description)
	nb.CreatorName = core.CleanString(nb.CreatorName)
	nb.CreatorCode = core.CleanString(nb.CreatorCode)
	return validate.Struct(nb)
}

type JoinRequest struct {
	BoardID    int    `json:"hagteugsa_id" validate:"required,min=1"`
	MemberName string `json:"member_name" validate:"required,notblank"`
	MemberCode string `json:"member_code" validate:"required,notblank"`
}

func (jr *JoinRequest) Validate(validate *validator.Validate) error {
	jr.MemberName = core.CleanString(jr.MemberName)
	jr.MemberCode = core.CleanString(jr.MemberCode)
	return validate.Struct(jr)
}
