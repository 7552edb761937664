package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/recordform"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func testPatients() []models.Patient {
	return []models.Patient{
		{ID: "p1", HN: "HN001", Name: "Somchai", Surname: "Lee", Gender: "M", DOB: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p2", HN: "HN002", Name: "Malee", Surname: "Suk", Gender: "F", DOB: time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func testRecord(id, patientID string) models.DailyRecord {
	form := recordform.NewDefaultForm()
	form.BT = models.TemperatureHighFever
	form.FoodIntake = pq.StringArray{"rice", "soup"}
	form.Notes = "needs follow-up"
	form.Shift = models.ShiftNight
	return models.DailyRecord{
		ID:         id,
		PatientID:  patientID,
		RecordDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		RecordForm: form,
	}
}

type mockPatientRepo struct {
	patients  []models.Patient
	listCalls int
	err       error
}

func (m *mockPatientRepo) List(ctx context.Context) ([]models.Patient, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Patient(nil), m.patients...), nil
}

func (m *mockPatientRepo) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.patients {
		if p.ID == id {
			patient := p
			return &patient, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockCacheRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{data: make(map[string][]byte)}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *mockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

type mockDailyRecordRepo struct {
	records map[string]models.DailyRecord
	created []models.DailyRecord
	updated []models.DailyRecord
	err     error
}

func newMockDailyRecordRepo(records ...models.DailyRecord) *mockDailyRecordRepo {
	m := &mockDailyRecordRepo{records: make(map[string]models.DailyRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockDailyRecordRepo) ListByPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.DailyRecord
	for _, r := range m.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockDailyRecordRepo) FindByID(ctx context.Context, id string) (*models.DailyRecord, error) {
	if r, ok := m.records[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDailyRecordRepo) Create(ctx context.Context, record *models.DailyRecord) error {
	if m.err != nil {
		return m.err
	}
	if record.ID == "" {
		record.ID = "generated"
	}
	m.records[record.ID] = *record
	m.created = append(m.created, *record)
	return nil
}

func (m *mockDailyRecordRepo) Update(ctx context.Context, record *models.DailyRecord) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[record.ID]; !ok {
		return sql.ErrNoRows
	}
	m.records[record.ID] = *record
	m.updated = append(m.updated, *record)
	return nil
}

type mockAuditRecorder struct {
	entries []AuditEntry
}

func (m *mockAuditRecorder) Record(ctx context.Context, entry AuditEntry) {
	m.entries = append(m.entries, entry)
}

type mockRecordStore struct {
	mu      sync.Mutex
	records []models.DailyRecord
	adds    []dto.RecordSubmission
	updates []dto.RecordSubmission
	actors  []Actor
	err     error
}

func (m *mockRecordStore) ListForPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.DailyRecord
	for _, r := range m.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecordStore) RecordOptions(ctx context.Context, patientID, query string) ([]dto.Option, error) {
	records, err := m.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return recordform.Search(recordform.RecordOptions(records), query), nil
}

func (m *mockRecordStore) AddRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds = append(m.adds, sub)
	m.actors = append(m.actors, actor)
	if m.err != nil {
		return nil, m.err
	}
	return &models.DailyRecord{ID: "new-record", PatientID: sub.PatientID, RecordForm: sub.Record.RecordForm}, nil
}

func (m *mockRecordStore) UpdateRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, sub)
	m.actors = append(m.actors, actor)
	if m.err != nil {
		return nil, m.err
	}
	return &models.DailyRecord{ID: sub.Record.ID, PatientID: sub.PatientID, RecordForm: sub.Record.RecordForm}, nil
}
