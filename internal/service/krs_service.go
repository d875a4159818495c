package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/pkg/config"
	"github.com/akademix/jadwal-api/pkg/jobs"
)

// KRSService hands KRS invalidations off to a background queue so the
// scheduling mutation that triggered them never blocks on the callout.
type KRSService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewKRSService wires the invalidation queue.
func NewKRSService(cfg config.KRSConfig, logger *zap.Logger) *KRSService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &KRSService{logger: logger}
	svc.queue = jobs.NewQueue("krs-invalidation", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the queue workers.
func (s *KRSService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *KRSService) Stop() {
	s.queue.Stop()
}

// Invalidate enqueues an invalidation callout. Best-effort: a full queue or
// stopped service only logs.
func (s *KRSService) Invalidate(inv KRSInvalidation) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "krs.invalidate",
		Payload: inv,
	})
	if err != nil {
		s.logger.Warn("krs invalidation dropped",
			zap.String("krs_id", inv.KRSID), zap.Error(err))
	}
}

func (s *KRSService) handle(ctx context.Context, job jobs.Job) error {
	inv, ok := job.Payload.(KRSInvalidation)
	if !ok {
		s.logger.Error("unexpected krs job payload", zap.String("job_id", job.ID))
		return nil
	}
	// The registration system is an external collaborator; the callout is
	// represented by a structured log until its API is available.
	s.logger.Warn("krs invalidated",
		zap.String("krs_id", inv.KRSID),
		zap.String("course_name", inv.CourseName),
		zap.String("reason", inv.Reason))
	return nil
}
