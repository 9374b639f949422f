package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
)

const boardColumns = "id, name, description"

func (s *Storage) Save(ctx context.Context, board domain.Board) (domain.Board, error) {
	if !board.Persisted() {
		err := s.db.QueryRowContext(ctx,
			"INSERT INTO boards(name, description) VALUES($1, $2) RETURNING id",
			board.Name, board.Description,
		).Scan(&board.Id)
		if err != nil {
			return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
		}
		return board, nil
	}

	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return upsertBoard(ctx, tx, board)
	})
	if err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// upsertBoard overwrites the record at board.Id, inserting it with that id
// if it does not exist yet.
func upsertBoard(ctx context.Context, q Querier, board domain.Board) error {
	res, err := q.ExecContext(ctx,
		"UPDATE boards SET name = $2, description = $3, updated = (now() at time zone 'utc') WHERE id = $1",
		board.Id, board.Name, board.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to update board %d: %w", board.Id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := q.ExecContext(ctx,
		"INSERT INTO boards(id, name, description) VALUES($1, $2, $3)",
		board.Id, board.Name, board.Description,
	); err != nil {
		return fmt.Errorf("failed to insert board %d: %w", board.Id, err)
	}
	// keep BIGSERIAL ahead of explicitly assigned ids
	if _, err := q.ExecContext(ctx,
		"SELECT setval(pg_get_serial_sequence('boards', 'id'), GREATEST((SELECT MAX(id) FROM boards), 1))",
	); err != nil {
		return fmt.Errorf("failed to advance board id sequence: %w", err)
	}
	return nil
}

func (s *Storage) FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRowContext(ctx,
		"SELECT "+boardColumns+" FROM boards WHERE id = $1", id,
	).Scan(&b.Id, &b.Name, &b.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, storage.ErrNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to get board %d: %w", id, err)
	}
	return b, nil
}

func (s *Storage) FindAll(ctx context.Context) ([]domain.Board, error) {
	return queryBoards(ctx, s.db, "SELECT "+boardColumns+" FROM boards ORDER BY id")
}

func (s *Storage) FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error) {
	return queryBoards(ctx, s.db,
		`SELECT `+boardColumns+` FROM boards WHERE lower(name) LIKE lower($1) || '%' ESCAPE '\' ORDER BY id`,
		escapeLike(prefix),
	)
}

func queryBoards(ctx context.Context, q Querier, query string, args ...interface{}) ([]domain.Board, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *Storage) Delete(ctx context.Context, board domain.Board) error {
	if !board.Persisted() {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", board.Id); err != nil {
		return fmt.Errorf("failed to delete board %d: %w", board.Id, err)
	}
	return nil
}

func (s *Storage) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "TRUNCATE boards RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to delete boards: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
