package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_CanJoin(t *testing.T) {
	b := Board{MaxMembers: 2, Members: []Member{{Name: "Kim"}}}

	assert.NoError(t, b.CanJoin("Lee"))
	assert.Equal(t, ErrAlreadyJoined, b.CanJoin("Kim"))

	b.Members = append(b.Members, Member{Name: "Lee"})
	assert.True(t, b.IsFull())
	assert.Equal(t, ErrFull, b.CanJoin("Park"))
	// a full board reports capacity before duplicates
	assert.Equal(t, ErrFull, b.CanJoin("Kim"))
}

func TestNewSummary(t *testing.T) {
	b := Board{
		ID: 3, Title: "Robotics", Description: "build", MaxMembers: 4, CreatorName: "Kim",
		Members: []Member{{Name: "Kim"}, {Name: "Lee"}},
	}

	assert.Equal(t, Summary{
		ID: 3, Title: "Robotics", Description: "build", MaxMembers: 4, CreatorName: "Kim",
		CurrentMembers: 2, Members: []string{"Kim", "Lee"},
	}, NewSummary(b))

	assert.Equal(t, []string{}, NewSummary(Board{}).Members)
}
