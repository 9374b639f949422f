// Package redis is the document BoardStore: each board is a JSON document
// under its own key, with a sorted set keeping store order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/storage"
)

// raiseSeq moves the id sequence up to ARGV[1] if it is behind.
var raiseSeq = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local id = tonumber(ARGV[1])
if current < id then
	redis.call('SET', KEYS[1], id)
end
return 0
`)

// Storage is safe for concurrent use, the underlying client pools connections.
type Storage struct {
	rdb    *redis.Client
	prefix string
}

var _ storage.BoardStore = (*Storage)(nil)

// New connects using the redis section of cfg and verifies connectivity.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	r := cfg.Public.Storage.Redis
	logger.Log.Info("connecting to redis", "addr", r.Addr, "db", r.DB)
	s := NewWithOptions(&redis.Options{
		Addr:     r.Addr,
		Password: cfg.Private.RedisPassword,
		DB:       r.DB,
	}, r.Prefix)
	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return s, nil
}

// NewWithOptions does not check connectivity.
func NewWithOptions(opts *redis.Options, prefix string) *Storage {
	return &Storage{rdb: redis.NewClient(opts), prefix: prefix}
}

func (s *Storage) boardKey(id domain.BoardId) string {
	return fmt.Sprintf("%s:board:%d", s.prefix, id)
}

func (s *Storage) indexKey() string {
	return s.prefix + ":boards"
}

func (s *Storage) seqKey() string {
	return s.prefix + ":board_seq"
}

func (s *Storage) Save(ctx context.Context, board domain.Board) (domain.Board, error) {
	if !board.Persisted() {
		id, err := s.rdb.Incr(ctx, s.seqKey()).Result()
		if err != nil {
			return domain.Board{}, fmt.Errorf("failed to allocate board id: %w", err)
		}
		board.Id = id
	} else if err := raiseSeq.Run(ctx, s.rdb, []string{s.seqKey()}, board.Id).Err(); err != nil {
		return domain.Board{}, fmt.Errorf("failed to advance board id sequence: %w", err)
	}

	doc, err := json.Marshal(board)
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to marshal board: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.boardKey(board.Id), doc, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(board.Id), Member: strconv.FormatInt(board.Id, 10)})
		return nil
	})
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to write board %d: %w", board.Id, err)
	}
	return board, nil
}

func (s *Storage) FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	doc, err := s.rdb.Get(ctx, s.boardKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Board{}, storage.ErrNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to read board %d: %w", id, err)
	}

	var b domain.Board
	if err := json.Unmarshal(doc, &b); err != nil {
		return domain.Board{}, fmt.Errorf("failed to unmarshal board %d: %w", id, err)
	}
	return b, nil
}

func (s *Storage) FindAll(ctx context.Context) ([]domain.Board, error) {
	ids, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read board index: %w", err)
	}
	boards := []domain.Board{}
	if len(ids) == 0 {
		return boards, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + ":board:" + id
	}
	docs, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read boards: %w", err)
	}

	for i, doc := range docs {
		str, ok := doc.(string)
		if !ok {
			// index entry without document, removed concurrently
			continue
		}
		var b domain.Board
		if err := json.Unmarshal([]byte(str), &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board %s: %w", ids[i], err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

func (s *Storage) FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	boards := []domain.Board{}
	for _, b := range all {
		if domain.NameHasPrefix(b.Name, prefix) {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (s *Storage) Delete(ctx context.Context, board domain.Board) error {
	if !board.Persisted() {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.boardKey(board.Id))
		pipe.ZRem(ctx, s.indexKey(), strconv.FormatInt(board.Id, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete board %d: %w", board.Id, err)
	}
	return nil
}

func (s *Storage) DeleteAll(ctx context.Context) error {
	ids, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read board index: %w", err)
	}
	keys := []string{s.indexKey(), s.seqKey()}
	for _, id := range ids {
		keys = append(keys, s.prefix+":board:"+id)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete boards: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Storage) Close() error {
	return s.rdb.Close()
}
