package assignment_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/assignment"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := assignment.NewService(dummydb.Open())

	as, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, as)
	assert.Empty(t, as)

	for _, d := range []string{"2024-04-01", "2024-03-15", "2024-03-20"} {
		a, err := svc.Add(ctx, assignment.NewAssignment{
			Subject: "korean", Title: "essay " + d, Deadline: d, Description: "1000 words",
			CreatorName: "Kim", CreatorCode: "101",
		})
		require.NoError(t, err)
		assert.NotZero(t, a.ID)
		assert.False(t, a.CreatedAt.IsZero())
	}

	as, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, as, 3)
	assert.Equal(t, []string{"2024-03-15", "2024-03-20", "2024-04-01"}, []string{as[0].Deadline, as[1].Deadline, as[2].Deadline})

	require.NoError(t, svc.Delete(ctx, as[0].ID))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, as[0].ID)))
}

func TestNewAssignment_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	na := assignment.NewAssignment{
		Subject: " math ", Title: "quiz", Deadline: "2024-03-05", Description: "ch. 3",
		CreatorName: "Kim", CreatorCode: "101",
	}
	require.NoError(t, na.Validate(validate))
	assert.Equal(t, "math", na.Subject)

	na.Deadline = "2024/03/05"
	err := na.Validate(validate)
	require.Error(t, err)
	assert.Equal(t, "deadline", err.(validator.ValidationErrors)[0].Field())
}
