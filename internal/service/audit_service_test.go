package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/pkg/jobs"
)

type mockAuditRepo struct {
	mu       sync.Mutex
	logs     []models.AuditLog
	failures int
}

func (m *mockAuditRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("db busy")
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAuditRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs)
}

func TestAuditServiceWritesInlineWhenStopped(t *testing.T) {
	repo := &mockAuditRepo{}
	svc := NewAuditService(repo, jobs.QueueConfig{}, nil, zap.NewNop())

	svc.Record(context.Background(), AuditEntry{
		Actor:      "nurse-1",
		Action:     models.AuditActionDailyRecordCreate,
		Resource:   models.AuditResourceDailyRecord,
		ResourceID: "r1",
		After:      map[string]string{"id": "r1"},
	})

	require.Equal(t, 1, repo.count())
	log := repo.logs[0]
	assert.NotEmpty(t, log.ID)
	require.NotNil(t, log.UserID)
	assert.Equal(t, "nurse-1", *log.UserID)
	assert.JSONEq(t, `{"id":"r1"}`, string(log.NewValues))
	assert.Nil(t, log.OldValues)
}

func TestAuditServiceQueuesAndRetries(t *testing.T) {
	repo := &mockAuditRepo{failures: 1}
	svc := NewAuditService(repo, jobs.QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond}, NewMetricsService(), zap.NewNop())
	svc.Start(context.Background())

	svc.Record(context.Background(), AuditEntry{Action: models.AuditActionDailyRecordUpdate, Resource: models.AuditResourceDailyRecord, ResourceID: "r1"})

	assert.Eventually(t, func() bool { return repo.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	svc.Stop()
}
