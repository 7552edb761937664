package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/care-record-api/internal/models"
)

// DailyRecordRepository manages persistence for daily records.
type DailyRecordRepository struct {
	db *sqlx.DB
}

// NewDailyRecordRepository constructs a DailyRecordRepository.
func NewDailyRecordRepository(db *sqlx.DB) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

const dailyRecordColumns = `id, patient_id, record_date, bt, bp, hr, rr, o2sat, conscious, breath_pattern, eat_method, food_type,
        food_intake, sleep, excretion, extra_symptoms, extra_food, notes, shift, created_by, updated_by, created_at, updated_at`

// ListByPatient returns a patient's records, newest first.
func (r *DailyRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error) {
	query := `SELECT ` + dailyRecordColumns + `
        FROM daily_records WHERE patient_id = $1 ORDER BY record_date DESC, created_at DESC`
	var records []models.DailyRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}
	return records, nil
}

// FindByID fetches a record by id. It returns sql.ErrNoRows when absent.
func (r *DailyRecordRepository) FindByID(ctx context.Context, id string) (*models.DailyRecord, error) {
	query := `SELECT ` + dailyRecordColumns + ` FROM daily_records WHERE id = $1`
	var record models.DailyRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new record.
func (r *DailyRecordRepository) Create(ctx context.Context, record *models.DailyRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO daily_records (id, patient_id, record_date, bt, bp, hr, rr, o2sat, conscious, breath_pattern, eat_method, food_type,
        food_intake, sleep, excretion, extra_symptoms, extra_food, notes, shift, created_by, updated_by, created_at, updated_at)
        VALUES (:id, :patient_id, :record_date, :bt, :bp, :hr, :rr, :o2sat, :conscious, :breath_pattern, :eat_method, :food_type,
        :food_intake, :sleep, :excretion, :extra_symptoms, :extra_food, :notes, :shift, :created_by, :updated_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create daily record: %w", err)
	}
	return nil
}

// Update overwrites the form fields of a record owned by record.PatientID.
// It returns sql.ErrNoRows when no such record exists.
func (r *DailyRecordRepository) Update(ctx context.Context, record *models.DailyRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE daily_records SET bt = :bt, bp = :bp, hr = :hr, rr = :rr, o2sat = :o2sat, conscious = :conscious,
        breath_pattern = :breath_pattern, eat_method = :eat_method, food_type = :food_type, food_intake = :food_intake, sleep = :sleep,
        excretion = :excretion, extra_symptoms = :extra_symptoms, extra_food = :extra_food, notes = :notes, shift = :shift,
        updated_by = :updated_by, updated_at = :updated_at WHERE id = :id AND patient_id = :patient_id`
	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("update daily record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update daily record: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
