package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/recordform"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
	"github.com/noah-isme/care-record-api/pkg/export"
	"github.com/noah-isme/care-record-api/pkg/logger"
)

type dailyRecordRepository interface {
	ListByPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error)
	FindByID(ctx context.Context, id string) (*models.DailyRecord, error)
	Create(ctx context.Context, record *models.DailyRecord) error
	Update(ctx context.Context, record *models.DailyRecord) error
}

type patientLookup interface {
	Get(ctx context.Context, id string) (*models.Patient, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// Actor identifies who is writing a record.
type Actor struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// DailyRecordServiceConfig carries the record store's tunables.
type DailyRecordServiceConfig struct {
	Location *time.Location
	CacheTTL time.Duration
}

// DailyRecordService is the record store: it lists, creates, updates and exports daily records.
type DailyRecordService struct {
	repo      dailyRecordRepository
	patients  patientLookup
	cache     *CacheService
	audit     auditRecorder
	validator *validator.Validate
	exporter  *export.CSVExporter
	logger    *zap.Logger
	cfg       DailyRecordServiceConfig
	now       func() time.Time
}

// NewDailyRecordService constructs the record store service. cache and audit may be nil.
func NewDailyRecordService(repo dailyRecordRepository, patients patientLookup, cache *CacheService, audit auditRecorder, validate *validator.Validate, cfg DailyRecordServiceConfig, log *zap.Logger) *DailyRecordService {
	if validate == nil {
		validate = NewValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &DailyRecordService{
		repo:      repo,
		patients:  patients,
		cache:     cache,
		audit:     audit,
		validator: validate,
		exporter:  export.NewCSVExporter(true),
		logger:    log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ListForPatient returns a patient's records newest first.
func (s *DailyRecordService) ListForPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error) {
	key := recordsCacheKey(patientID)
	var cached []models.DailyRecord
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list daily records")
	}
	if records == nil {
		records = []models.DailyRecord{}
	}
	s.cache.Set(ctx, key, records, s.cfg.CacheTTL)
	return records, nil
}

// Get returns a single record.
func (s *DailyRecordService) Get(ctx context.Context, id string) (*models.DailyRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "daily record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load daily record")
	}
	return record, nil
}

// RecordOptions returns the record choices for a patient: "create-new" first, then each
// record, filtered by query.
func (s *DailyRecordService) RecordOptions(ctx context.Context, patientID, query string) ([]dto.Option, error) {
	records, err := s.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return recordform.Search(recordform.RecordOptions(records), query), nil
}

// AddRecord creates a record dated today in the facility timezone.
func (s *DailyRecordService) AddRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}
	if _, err := s.patients.Get(ctx, sub.PatientID); err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Location)
	record := &models.DailyRecord{
		PatientID:  sub.PatientID,
		RecordDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		RecordForm: storableForm(sub.Record.RecordForm),
		CreatedBy:  optionalString(actor.UserID),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create daily record")
	}

	s.cache.Invalidate(ctx, recordsCacheKey(record.PatientID))
	s.recordAudit(ctx, actor, models.AuditActionDailyRecordCreate, record.ID, nil, record)
	logger.WithContext(ctx, s.logger).Info("daily record created",
		zap.String("record_id", record.ID),
		zap.String("patient_id", record.PatientID),
		zap.String("shift", string(record.Shift)),
	)
	return record, nil
}

// UpdateRecord overwrites the form fields of an existing record owned by the submitted patient.
func (s *DailyRecordService) UpdateRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}
	if !sub.TargetsExisting() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required for update")
	}

	existing, err := s.Get(ctx, sub.Record.ID)
	if err != nil {
		return nil, err
	}
	if existing.PatientID != sub.PatientID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "daily record not found for patient")
	}

	before := *existing
	updated := *existing
	updated.RecordForm = storableForm(sub.Record.RecordForm)
	updated.UpdatedBy = optionalString(actor.UserID)
	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "daily record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update daily record")
	}

	s.cache.Invalidate(ctx, recordsCacheKey(updated.PatientID))
	s.recordAudit(ctx, actor, models.AuditActionDailyRecordUpdate, updated.ID, before, updated)
	logger.WithContext(ctx, s.logger).Info("daily record updated",
		zap.String("record_id", updated.ID),
		zap.String("patient_id", updated.PatientID),
	)
	return &updated, nil
}

// storableForm copies form for persistence. food_intake is a NOT NULL array column.
func storableForm(form models.RecordForm) models.RecordForm {
	out := form.Clone()
	if out.FoodIntake == nil {
		out.FoodIntake = pq.StringArray{}
	}
	return out
}

var exportColumns = []export.Column{
	{Key: "id", Title: "id"},
	{Key: "record_date", Title: "วันที่"},
	{Key: models.FieldShift, Title: "เวร"},
	{Key: models.FieldBT, Title: "BT"},
	{Key: models.FieldBP, Title: "BP"},
	{Key: models.FieldHR, Title: "HR"},
	{Key: models.FieldRR, Title: "RR"},
	{Key: models.FieldO2Sat, Title: "O2sat"},
	{Key: models.FieldConscious, Title: "ระดับความรู้สึกตัว"},
	{Key: models.FieldBreathPattern, Title: "ลักษณะการหายใจ"},
	{Key: models.FieldEatMethod, Title: "รูปแบบการรับประทานอาหาร"},
	{Key: models.FieldFoodType, Title: "อาหาร"},
	{Key: models.FieldFoodIntake, Title: "ปริมาณอาหาร"},
	{Key: models.FieldExtraFood, Title: "พฤติกรรมการรับประทานอาหาร"},
	{Key: models.FieldSleep, Title: "การนอนหลับ"},
	{Key: models.FieldExcretion, Title: "การขับถ่าย"},
	{Key: models.FieldExtraSymptoms, Title: "อาการอื่นๆ"},
	{Key: models.FieldNotes, Title: "หมายเหตุ"},
}

// Export renders a patient's records as CSV and returns the payload with a suggested filename.
func (s *DailyRecordService) Export(ctx context.Context, patientID string) ([]byte, string, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, "", err
	}
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list daily records")
	}

	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]string{
			"id":                      r.ID,
			"record_date":             r.RecordDate.Format("2006-01-02"),
			models.FieldShift:         r.Shift.Label(),
			models.FieldBT:            string(r.BT),
			models.FieldBP:            string(r.BP),
			models.FieldHR:            string(r.HR),
			models.FieldRR:            string(r.RR),
			models.FieldO2Sat:         string(r.O2Sat),
			models.FieldConscious:     string(r.Conscious),
			models.FieldBreathPattern: string(r.BreathPattern),
			models.FieldEatMethod:     string(r.EatMethod),
			models.FieldFoodType:      string(r.FoodType),
			models.FieldFoodIntake:    joinNonEmpty(r.FoodIntake, "; "),
			models.FieldExtraFood:     string(r.ExtraFood),
			models.FieldSleep:         r.Sleep,
			models.FieldExcretion:     r.Excretion,
			models.FieldExtraSymptoms: r.ExtraSymptoms,
			models.FieldNotes:         r.Notes,
		})
	}

	payload, err := s.exporter.Render(export.Dataset{Columns: exportColumns, Rows: rows})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	filename := fmt.Sprintf("daily-records-%s-%s.csv", patient.HN, s.now().In(s.cfg.Location).Format("20060102"))
	return payload, filename, nil
}

// ContentType is the MIME type of Export output.
func (s *DailyRecordService) ContentType() string {
	return s.exporter.ContentType()
}

func (s *DailyRecordService) validate(sub dto.RecordSubmission) error {
	if err := s.validator.Struct(sub); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record submission")
	}
	return nil
}

func (s *DailyRecordService) recordAudit(ctx context.Context, actor Actor, action, recordID string, before, after interface{}) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Actor:      actor.UserID,
		Action:     action,
		Resource:   models.AuditResourceDailyRecord,
		ResourceID: recordID,
		Before:     before,
		After:      after,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	})
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func joinNonEmpty(values []string, sep string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
