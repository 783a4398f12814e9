package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/daeshin/schoolhub/core/board"
)

func (h hagteugsa) board() board.Board {
	b := board.Board{
		ID:          h.ID,
		Title:       h.Title,
		Description: h.Description,
		MaxMembers:  h.MaxMembers,
		CreatorName: h.CreatorName,
		CreatorCode: h.CreatorCode,
		CreatedAt:   h.CreatedAt,
		Members:     make([]board.Member, 0, len(h.Members)),
	}
	for _, m := range h.Members {
		b.Members = append(b.Members, board.Member{Name: m.MemberName, Code: m.MemberCode, JoinedAt: m.JoinedAt})
	}
	return b
}

func newMemberRow(boardID int, m board.Member) hagteugsaMember {
	return hagteugsaMember{HagteugsaID: boardID, MemberName: m.Name, MemberCode: m.Code, JoinedAt: m.JoinedAt}
}

func preloadMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("joined_at, id")
	})
}

func (s *Store) CreateBoard(ctx context.Context, b board.Board) (int, error) {
	row := hagteugsa{
		Title:       b.Title,
		Description: b.Description,
		MaxMembers:  b.MaxMembers,
		CreatorName: b.CreatorName,
		CreatorCode: b.CreatorCode,
		CreatedAt:   b.CreatedAt,
	}
	for _, m := range b.Members {
		row.Members = append(row.Members, newMemberRow(0, m))
	}
	// members are inserted along with the board, in one transaction
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "inserting board")
	}
	return row.ID, nil
}

func (s *Store) ListBoards(ctx context.Context) ([]board.Board, error) {
	var rows []hagteugsa
	if err := preloadMembers(s.db.WithContext(ctx)).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "selecting boards")
	}
	boards := make([]board.Board, 0, len(rows))
	for _, r := range rows {
		boards = append(boards, r.board())
	}
	return boards, nil
}

func getBoard(db *gorm.DB, id int) (board.Board, error) {
	var row hagteugsa
	if err := preloadMembers(db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return board.Board{}, board.ErrNotFound
		}
		return board.Board{}, errors.Wrap(err, "selecting board")
	}
	return row.board(), nil
}

func (s *Store) GetBoard(ctx context.Context, id int) (board.Board, error) {
	return getBoard(s.db.WithContext(ctx), id)
}

func (s *Store) JoinBoard(ctx context.Context, id int, m board.Member) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getBoard(tx, id)
		if err != nil {
			return err
		}
		if err := b.CanJoin(m.Name); err != nil {
			return err
		}
		row := newMemberRow(id, m)
		return errors.Wrap(tx.Create(&row).Error, "inserting board member")
	})
}

func (s *Store) DeleteBoard(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// files created before foreign keys were enforced have no cascade
		if err := tx.Where("hagteugsa_id = ?", id).Delete(&hagteugsaMember{}).Error; err != nil {
			return errors.Wrap(err, "deleting board members")
		}
		res := tx.Delete(&hagteugsa{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "deleting board")
		}
		if res.RowsAffected == 0 {
			return board.ErrNotFound
		}
		return nil
	})
}
