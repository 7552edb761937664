package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/recordform"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

type patientRepository interface {
	List(ctx context.Context) ([]models.Patient, error)
	FindByID(ctx context.Context, id string) (*models.Patient, error)
}

// PatientService serves the facility patient directory.
type PatientService struct {
	repo   patientRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewPatientService constructs the patient directory service. cache may be nil.
func NewPatientService(repo patientRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *PatientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatientService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// List returns every patient, served from cache when available.
func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	var cached []models.Patient
	if s.cache.Get(ctx, patientsCacheKey, &cached) {
		return cached, nil
	}

	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list patients")
	}
	if patients == nil {
		patients = []models.Patient{}
	}
	s.cache.Set(ctx, patientsCacheKey, patients, s.ttl)
	return patients, nil
}

// Get returns a single patient.
func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "patient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load patient")
	}
	return patient, nil
}

// Options returns patient options labelled "name surname (HN)" filtered by query.
func (s *PatientService) Options(ctx context.Context, query string) ([]dto.Option, error) {
	patients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return recordform.Search(recordform.PatientOptions(patients), query), nil
}
