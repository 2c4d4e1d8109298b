package services

import (
	"context"
	"fmt"

	"github.com/mbruna/mindvault/internal/worker"
)

// graphReindexJob rebuilds one note's links on the worker pool.
type graphReindexJob struct {
	noteID int64
	graph  GraphService
}

func (j *graphReindexJob) Name() string {
	return fmt.Sprintf("graph-reindex-%d", j.noteID)
}

func (j *graphReindexJob) Run(ctx context.Context) error {
	return j.graph.ReindexNote(ctx, j.noteID)
}

// PoolReindexer submits graph reindex jobs to a worker pool. It satisfies the
// NoteService's Reindexer dependency.
type PoolReindexer struct {
	pool  *worker.Pool
	graph GraphService
}

// NewPoolReindexer creates a Reindexer backed by the given pool.
func NewPoolReindexer(pool *worker.Pool, graph GraphService) *PoolReindexer {
	return &PoolReindexer{pool: pool, graph: graph}
}

func (r *PoolReindexer) ScheduleReindex(noteID int64) {
	r.pool.Submit(&graphReindexJob{noteID: noteID, graph: r.graph})
}

// SyncReindexer reindexes inline instead of on a pool. Used in tests.
type SyncReindexer struct {
	Graph GraphService
}

func (r *SyncReindexer) ScheduleReindex(noteID int64) {
	_ = r.Graph.ReindexNote(context.Background(), noteID)
}
