package store

import (
	"context"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/metrics"
)

type instrumented[E any] struct {
	next Collection[E]
}

// Instrument records the latency and outcome of every call on c
func Instrument[E any](c Collection[E]) Collection[E] {
	return &instrumented[E]{next: c}
}

func (i *instrumented[E]) Name() string { return i.next.Name() }

func (i *instrumented[E]) GetAll(ctx context.Context) ([]E, error) {
	start := time.Now()
	rows, err := i.next.GetAll(ctx)
	metrics.RecordStoreOp("get_all", i.next.Name(), err, time.Since(start))
	return rows, err
}

func (i *instrumented[E]) GetByID(ctx context.Context, id int) (E, error) {
	start := time.Now()
	row, err := i.next.GetByID(ctx, id)
	metrics.RecordStoreOp("get_by_id", i.next.Name(), err, time.Since(start))
	return row, err
}

func (i *instrumented[E]) Create(ctx context.Context, e E) (E, error) {
	start := time.Now()
	row, err := i.next.Create(ctx, e)
	metrics.RecordStoreOp("create", i.next.Name(), err, time.Since(start))
	return row, err
}

func (i *instrumented[E]) Update(ctx context.Context, id int, apply func(*E)) (E, error) {
	start := time.Now()
	row, err := i.next.Update(ctx, id, apply)
	metrics.RecordStoreOp("update", i.next.Name(), err, time.Since(start))
	return row, err
}

func (i *instrumented[E]) Delete(ctx context.Context, id int) (bool, error) {
	start := time.Now()
	ok, err := i.next.Delete(ctx, id)
	metrics.RecordStoreOp("delete", i.next.Name(), err, time.Since(start))
	return ok, err
}
