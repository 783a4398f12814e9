package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/daeshin/schoolhub/core/board"
)

type (
	boardRow struct {
		ID          int       `db:"id"`
		Title       string    `db:"title"`
		Description string    `db:"description"`
		MaxMembers  int       `db:"max_members"`
		CreatorName string    `db:"creator_name"`
		CreatorCode string    `db:"creator_code"`
		CreatedAt   null.Time `db:"created_at"`
	}

	memberRow struct {
		BoardID  int       `db:"hagteugsa_id"`
		Name     string    `db:"member_name"`
		Code     string    `db:"member_code"`
		JoinedAt null.Time `db:"joined_at"`
	}
)

func (r boardRow) board(members []memberRow) board.Board {
	b := board.Board{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		MaxMembers:  r.MaxMembers,
		CreatorName: r.CreatorName,
		CreatorCode: r.CreatorCode,
		CreatedAt:   r.CreatedAt.Time,
		Members:     make([]board.Member, 0, len(members)),
	}
	for _, m := range members {
		b.Members = append(b.Members, board.Member{Name: m.Name, Code: m.Code, JoinedAt: m.JoinedAt.Time})
	}
	return b
}

const (
	boardColumns  = "id, title, description, max_members, creator_name, creator_code, created_at"
	memberColumns = "hagteugsa_id, member_name, member_code, joined_at"
	memberOrder   = " ORDER BY joined_at, id"
)

func insertMember(ctx context.Context, tx *sqlx.Tx, boardID int, m board.Member) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO hagteugsa_members (hagteugsa_id, member_name, member_code, joined_at)
		VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()))`,
		boardID, m.Name, m.Code, null.NewTime(m.JoinedAt, !m.JoinedAt.IsZero()),
	)
	return errors.Wrap(err, "inserting board member")
}

func (s *Store) CreateBoard(ctx context.Context, b board.Board) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	var id int
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO hagteugsa (title, description, max_members, creator_name, creator_code, created_at)
			VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW())) RETURNING id`,
			b.Title, b.Description, b.MaxMembers, b.CreatorName, b.CreatorCode, null.NewTime(b.CreatedAt, !b.CreatedAt.IsZero()),
		).Scan(&id)
		if err != nil {
			return errors.Wrap(err, "inserting board")
		}
		for _, m := range b.Members {
			if err := insertMember(ctx, tx, id, m); err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

func (s *Store) ListBoards(ctx context.Context) ([]board.Board, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var rows []boardRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT "+boardColumns+" FROM hagteugsa ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, errors.Wrap(err, "selecting boards")
	}
	var members []memberRow
	if err := s.db.SelectContext(ctx, &members, "SELECT "+memberColumns+" FROM hagteugsa_members"+memberOrder); err != nil {
		return nil, errors.Wrap(err, "selecting board members")
	}

	byBoard := make(map[int][]memberRow, len(rows))
	for _, m := range members {
		byBoard[m.BoardID] = append(byBoard[m.BoardID], m)
	}
	boards := make([]board.Board, 0, len(rows))
	for _, r := range rows {
		boards = append(boards, r.board(byBoard[r.ID]))
	}
	return boards, nil
}

func (s *Store) getBoard(ctx context.Context, q sqlx.QueryerContext, id int, lock bool) (board.Board, error) {
	var row boardRow
	query := "SELECT " + boardColumns + " FROM hagteugsa WHERE id = $1"
	if lock {
		query += " FOR UPDATE"
	}
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return board.Board{}, board.ErrNotFound
		}
		return board.Board{}, errors.Wrap(err, "selecting board")
	}
	var members []memberRow
	if err := sqlx.SelectContext(ctx, q, &members, "SELECT "+memberColumns+" FROM hagteugsa_members WHERE hagteugsa_id = $1"+memberOrder, id); err != nil {
		return board.Board{}, errors.Wrap(err, "selecting board members")
	}
	return row.board(members), nil
}

func (s *Store) GetBoard(ctx context.Context, id int) (board.Board, error) {
	if err := s.check(); err != nil {
		return board.Board{}, err
	}
	return s.getBoard(ctx, s.db, id, false)
}

// JoinBoard locks the board row so concurrent joins cannot over-enrol it.
func (s *Store) JoinBoard(ctx context.Context, id int, m board.Member) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.getBoard(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := b.CanJoin(m.Name); err != nil {
			return err
		}
		return insertMember(ctx, tx, id, m)
	})
}

func (s *Store) DeleteBoard(ctx context.Context, id int) error {
	if err := s.check(); err != nil {
		return err
	}
	// members go with the board: ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, "DELETE FROM hagteugsa WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting board")
	}
	return affectedOrNotFound(res, board.ErrNotFound)
}
