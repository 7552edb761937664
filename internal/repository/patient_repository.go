package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/care-record-api/internal/models"
)

// PatientRepository reads the facility patient directory.
type PatientRepository struct {
	db *sqlx.DB
}

// NewPatientRepository constructs a PatientRepository.
func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = `id, hn, name, surname, gender, dob, created_at, updated_at`

// List returns every patient ordered by name.
func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY name ASC, surname ASC, hn ASC`
	var patients []models.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// FindByID fetches a patient by id. It returns sql.ErrNoRows when absent.
func (r *PatientRepository) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	var patient models.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, err
	}
	return &patient, nil
}
