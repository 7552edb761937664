package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	svc.Set(context.Background(), "k", "v", 0)
	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
	assert.Empty(t, repo.data)
}

func TestCacheServiceRoundTripAndInvalidate(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)

	svc.Set(context.Background(), patientsCacheKey, []string{"a"}, 0)
	var out []string
	assert.True(t, svc.Get(context.Background(), patientsCacheKey, &out))
	assert.Equal(t, []string{"a"}, out)

	svc.Invalidate(context.Background(), patientsCacheKey)
	assert.False(t, svc.Get(context.Background(), patientsCacheKey, &out))
	assert.Equal(t, []string{patientsCacheKey}, repo.deleted)
}

func TestCacheServiceNilIsSafe(t *testing.T) {
	var svc *CacheService
	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", "v", 0)
	svc.Invalidate(context.Background(), "k")
}
