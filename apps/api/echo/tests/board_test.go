package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core/board"
)

func createBoard(t *testing.T, env *testEnv, title string, max int) int {
	t.Helper()
	nb := board.NewBoard{Title: title, Description: title + " club", MaxMembers: max, CreatorName: "Kim", CreatorCode: "101"}
	rec := env.do(http.MethodPost, "/api/board/create", marchallObj(t, nb))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func Test_boardApi_create(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name: "valid",
			body: marchallObj(t, board.NewBoard{Title: "chess", Description: "weekly games", MaxMembers: 4, CreatorName: "Kim", CreatorCode: "101"}),
			wantData: success(t, map[string]interface{}{"id": 1}),
		},
		{
			name:     "zero capacity",
			body:     []byte(`{"title":"chess","description":"weekly games","max_members":0,"creator_name":"Kim","creator_code":"101"}`),
			wantCode: http.StatusBadRequest,
			wantData: failure(t, "missing or invalid fields", map[string]string{"max_members": "this field is required"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/board/create"
	}
	env.run(t, tests)

	b, err := env.primary.GetBoard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, b.Members, 1)
	assert.Equal(t, "Kim", b.Members[0].Name, "the creator joins the board")
}

func Test_boardApi_list(t *testing.T) {
	env := setup(t)
	env.run(t, []httpTest{{name: "empty", path: "/api/board/list", wantData: success(t, map[string]interface{}{"data": []board.Summary{}})}})

	chess := createBoard(t, env, "chess", 2)
	coding := createBoard(t, env, "coding", 5)

	summary := func(id int, title string, max int) board.Summary {
		return board.Summary{
			ID: id, Title: title, Description: title + " club", MaxMembers: max,
			CreatorName: "Kim", CurrentMembers: 1, Members: []string{"Kim"},
		}
	}
	want := success(t, map[string]interface{}{"data": []board.Summary{summary(coding, "coding", 5), summary(chess, "chess", 2)}})
	env.run(t, []httpTest{
		{name: "newest first", path: "/api/board/list", wantData: want},
		{name: "legacy path", path: "/api/hagteugsa/list", wantData: want},
	})
}

func Test_boardApi_join(t *testing.T) {
	env := setup(t)
	id := createBoard(t, env, "chess", 2)

	join := func(boardID int, name string) []byte {
		return marchallObj(t, board.JoinRequest{BoardID: boardID, MemberName: name, MemberCode: "1xx"})
	}
	tests := []httpTest{
		{name: "creator again", body: join(id, "Kim"), wantCode: http.StatusConflict, wantData: failure(t, "already joined this board")},
		{name: "valid", body: join(id, "Lee"), wantData: success(t)},
		{name: "full", body: join(id, "Park"), wantCode: http.StatusBadRequest, wantData: failure(t, "recruitment is closed")},
		{name: "unknown board", body: join(id+1, "Park"), wantCode: http.StatusNotFound, wantData: failure(t, "board not found")},
		{
			name: "missing member", body: []byte(`{"hagteugsa_id":1}`), wantCode: http.StatusBadRequest,
			wantData: failure(t, "missing or invalid fields", map[string]string{
				"member_name": "this field is required", "member_code": "this field is required",
			}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/board/join"
	}
	env.run(t, tests)

	b, err := env.primary.GetBoard(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, b.Members, 2)
}

func Test_boardApi_delete(t *testing.T) {
	env := setup(t)
	id := createBoard(t, env, "chess", 2)

	tests := []httpTest{
		{name: "existing", path: "/api/board/delete/1", wantData: success(t)},
		{name: "already deleted", path: "/api/board/delete/1", wantCode: http.StatusNotFound, wantData: failure(t, "board not found")},
	}
	for i := range tests {
		tests[i].method = http.MethodDelete
	}
	env.run(t, tests)

	_, err := env.primary.GetBoard(context.Background(), id)
	assert.Error(t, err)
}
