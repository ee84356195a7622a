package workerpool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StatsWorker consumes session-completion events and recomputes the stored
// user progress so the dashboard never aggregates inside a request.
type StatsWorker struct {
	id           string
	quit         chan bool
	rdb          *redis.Client
	stream       string
	group        string
	sessionRepo  repositories.SessionRepository
	progressRepo repositories.ProgressRepository
}

// NewStatsWorker creates a new stats worker
func NewStatsWorker(id string, rdb *redis.Client, stream, group string,
	sessionRepo repositories.SessionRepository, progressRepo repositories.ProgressRepository) *StatsWorker {
	return &StatsWorker{
		id:           id,
		quit:         make(chan bool),
		rdb:          rdb,
		stream:       stream,
		group:        group,
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
	}
}

// Start begins processing jobs from the stream
func (w *StatsWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-w.quit:
				return
			default:
				entries, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
					Group:    w.group,
					Consumer: w.id,
					Streams:  []string{w.stream, ">"},
					Count:    1,
					Block:    5 * time.Second,
				}).Result()

				if err != nil {
					if err != redis.Nil {
						logger.Log.Error("Redis operation failed",
							zap.String("worker_id", w.id),
							zap.Error(err))
					}
					continue
				}

				for _, stream := range entries {
					for _, msg := range stream.Messages {
						w.processCompletion(ctx, msg)
					}
				}
			}
		}
	}()
}

func (w *StatsWorker) Stop() {
	logger.Log.Info("Closing worker",
		zap.String("worker_id", w.id))
	w.quit <- true
	close(w.quit)
}

func (w *StatsWorker) processCompletion(ctx context.Context, msg redis.XMessage) {
	logger.Log.Info("Processing session completion",
		zap.String("worker_id", w.id),
		zap.String("job_id", msg.ID))

	if err := w.rdb.XAck(ctx, w.stream, w.group, msg.ID).Err(); err != nil {
		logger.Log.Error("Failed to acknowledge job",
			zap.String("worker_id", w.id),
			zap.Error(err))
	}

	sessionIDStr, ok := msg.Values["session_id"].(string)
	if !ok {
		logger.Log.Error("Invalid session ID in message",
			zap.String("worker_id", w.id),
			zap.Any("values", msg.Values))
		return
	}

	sessionID, err := strconv.Atoi(sessionIDStr)
	if err != nil {
		logger.Log.Error("Failed to parse session ID",
			zap.String("worker_id", w.id),
			zap.String("session_id", sessionIDStr),
			zap.Error(err))
		return
	}

	session, err := w.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		logger.Log.Error("Failed to get completed session",
			zap.String("worker_id", w.id),
			zap.Int("session_id", sessionID),
			zap.Error(err))
		return
	}
	if session.Evaluation == nil {
		logger.Log.Error("Completed session has no evaluation",
			zap.String("worker_id", w.id),
			zap.Int("session_id", sessionID))
		return
	}

	progress, err := w.progressRepo.GetOrCreateProgress(ctx)
	if err != nil {
		logger.Log.Error("Failed to load user progress",
			zap.String("worker_id", w.id),
			zap.Error(err))
		return
	}

	averageScore, err := w.sessionRepo.GetAverageOverallScore(ctx)
	if err != nil {
		logger.Log.Error("Failed to average scores",
			zap.String("worker_id", w.id),
			zap.Error(err))
		return
	}

	now := time.Now().UTC()
	ApplyCompletion(progress, session.Evaluation.OverallScore, session.Evaluation.CommunicationScore, averageScore, now)

	if err := w.progressRepo.UpdateProgress(ctx, progress); err != nil {
		logger.Log.Error("Failed to update user progress",
			zap.String("worker_id", w.id),
			zap.Error(err))
		return
	}

	logger.Log.Info("Finished processing session completion",
		zap.String("worker_id", w.id),
		zap.String("job_id", msg.ID),
		zap.Int("session_id", sessionID),
		zap.Int("total_sessions", progress.TotalSessions))
}

type StatsWorkerPool struct {
	workers      []*StatsWorker
	numWorkers   int
	rdb          *redis.Client
	stream       string
	group        string
	sessionRepo  repositories.SessionRepository
	progressRepo repositories.ProgressRepository
}

func NewStatsWorkerPool(numWorkers int, rdb *redis.Client, stream, group string,
	sessionRepo repositories.SessionRepository, progressRepo repositories.ProgressRepository) *StatsWorkerPool {
	return &StatsWorkerPool{
		workers:      make([]*StatsWorker, numWorkers),
		numWorkers:   numWorkers,
		rdb:          rdb,
		stream:       stream,
		group:        group,
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
	}
}

func (p *StatsWorkerPool) Start(ctx context.Context) error {
	// Create consumer group if it doesn't exist
	_, err := p.rdb.XGroupCreateMkStream(ctx, p.stream, p.group, "$").Result()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for i := 0; i < p.numWorkers; i++ {
		worker := NewStatsWorker(
			fmt.Sprintf("StatsWorker-%d", i+1),
			p.rdb,
			p.stream,
			p.group,
			p.sessionRepo,
			p.progressRepo,
		)

		worker.Start(ctx)
		p.workers[i] = worker

		logger.Log.Info("Starting stats worker",
			zap.String("worker_id", worker.id))
	}

	logger.Log.Info("Stats worker pool started",
		zap.Int("num_workers", p.numWorkers))

	return nil
}

// Stop terminates all workers in the pool
func (p *StatsWorkerPool) Stop() {
	for _, worker := range p.workers {
		worker.Stop()
	}
}
