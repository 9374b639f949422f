package storage

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taskboards/boards/internal/domain"
)

// Instrumented wraps a BoardStore and records per-operation Prometheus metrics.
type Instrumented struct {
	next     BoardStore
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ BoardStore = (*Instrumented)(nil)

func NewInstrumented(next BoardStore, driver string, reg prometheus.Registerer) *Instrumented {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"driver": driver}
	return &Instrumented{
		next: next,
		ops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "board_store_operations_total",
				Help:        "Total number of board store operations",
				ConstLabels: labels,
			},
			[]string{"op", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "board_store_operation_duration_seconds",
				Help:        "Board store operation duration in seconds",
				ConstLabels: labels,
				Buckets:     []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"op"},
		),
	}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil && !errors.Is(err, ErrNotFound) {
		result = "error"
	}
	s.ops.WithLabelValues(op, result).Inc()
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *Instrumented) Save(ctx context.Context, board domain.Board) (domain.Board, error) {
	start := time.Now()
	b, err := s.next.Save(ctx, board)
	s.observe("save", start, err)
	return b, err
}

func (s *Instrumented) FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	start := time.Now()
	b, err := s.next.FindByID(ctx, id)
	s.observe("find_by_id", start, err)
	return b, err
}

func (s *Instrumented) FindAll(ctx context.Context) ([]domain.Board, error) {
	start := time.Now()
	boards, err := s.next.FindAll(ctx)
	s.observe("find_all", start, err)
	return boards, err
}

func (s *Instrumented) FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error) {
	start := time.Now()
	boards, err := s.next.FindByNamePrefix(ctx, prefix)
	s.observe("find_by_name_prefix", start, err)
	return boards, err
}

func (s *Instrumented) Delete(ctx context.Context, board domain.Board) error {
	start := time.Now()
	err := s.next.Delete(ctx, board)
	s.observe("delete", start, err)
	return err
}

func (s *Instrumented) DeleteAll(ctx context.Context) error {
	start := time.Now()
	err := s.next.DeleteAll(ctx)
	s.observe("delete_all", start, err)
	return err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *Instrumented) Close() error {
	return s.next.Close()
}
