package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/pkg/jobs"
	"github.com/noah-isme/care-record-api/pkg/logger"
)

type auditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditEntry describes one auditable change.
type AuditEntry struct {
	Actor      string
	Action     string
	Resource   string
	ResourceID string
	Before     interface{}
	After      interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService persists audit logs through a background queue, falling back to a
// synchronous write when the queue is not running.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue[models.AuditLog]
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAuditService constructs the audit service and its queue. Call Start to begin background writes.
func NewAuditService(repo auditRepository, cfg jobs.QueueConfig, metrics *MetricsService, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	svc := &AuditService{repo: repo, metrics: metrics, logger: logger}
	svc.queue = jobs.NewQueue[models.AuditLog]("audit", svc.handle, cfg)
	return svc
}

// Start launches the audit workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains pending audit logs and stops the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record builds an audit log for entry and hands it to the queue.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	log := &models.AuditLog{
		ID:        uuid.NewString(),
		Action:    entry.Action,
		Resource:  entry.Resource,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
	if entry.Actor != "" {
		actor := entry.Actor
		log.UserID = &actor
	}
	if entry.ResourceID != "" {
		id := entry.ResourceID
		log.ResourceID = &id
	}
	log.OldValues = marshalAuditValue(entry.Before)
	log.NewValues = marshalAuditValue(entry.After)

	_, err := s.queue.Enqueue(*log)
	if err == nil {
		return
	}
	if !errors.Is(err, jobs.ErrNotRunning) {
		logger.WithContext(ctx, s.logger).Warn("audit queue rejected entry, writing inline", zap.String("action", entry.Action), zap.Error(err))
	}

	if err := s.write(context.WithoutCancel(ctx), log); err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to write audit log", zap.String("action", entry.Action), zap.Error(err))
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job[models.AuditLog]) error {
	log := job.Payload
	return s.write(ctx, &log)
}

func (s *AuditService) write(ctx context.Context, log *models.AuditLog) error {
	if err := s.repo.CreateAuditLog(ctx, log); err != nil {
		s.metrics.RecordAuditJob(OutcomeFailed)
		return err
	}
	s.metrics.RecordAuditJob(OutcomeSuccess)
	return nil
}

func marshalAuditValue(v interface{}) []byte {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
