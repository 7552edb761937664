package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/care-record-api/internal/models"
)

// CreateNewRecordID is the sentinel record option that starts a new record.
const CreateNewRecordID = "create-new"

// Option is a selectable {id, label} pair shown in a search-filter bar.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FormHeader is the read-only patient projection shown above the form.
type FormHeader struct {
	PatientID   string `json:"patient_id"`
	HN          string `json:"HN"`
	NameSurname string `json:"name_surname"`
	Sex         string `json:"sex"`
	Age         *int   `json:"age"`
}

// Selection is the (patient, record) pair currently being viewed or edited.
// RecordID is empty, CreateNewRecordID, or the id of a stored record.
type Selection struct {
	PatientID string `json:"patient_id"`
	RecordID  string `json:"record_id,omitempty"`
}

// SubmittedRecord is the full form plus the targeted record id.
type SubmittedRecord struct {
	ID string `json:"id,omitempty"`
	models.RecordForm
}

// RecordSubmission is the create-or-update payload dispatched to the record store.
type RecordSubmission struct {
	PatientID string          `json:"patientId" validate:"required"`
	Record    SubmittedRecord `json:"record"`
}

// TargetsExisting reports whether the submission should update a stored record.
func (s RecordSubmission) TargetsExisting() bool {
	return s.Record.ID != "" && s.Record.ID != CreateNewRecordID
}

// SelectPatientRequest selects a patient inside a form session.
type SelectPatientRequest struct {
	PatientID string `json:"patientId" validate:"required"`
}

// SelectRecordRequest selects a record; an empty id clears the record selection.
type SelectRecordRequest struct {
	RecordID string `json:"recordId"`
}

// FieldEdit sets a single form field.
type FieldEdit struct {
	Name  string          `json:"name" validate:"required"`
	Value json.RawMessage `json:"value" validate:"required"`
}

// FormSessionView is the client-facing snapshot of a form session.
type FormSessionView struct {
	ID          string            `json:"id"`
	State       string            `json:"state"`
	Header      FormHeader        `json:"header"`
	HeaderStale bool              `json:"header_stale"`
	Selection   Selection         `json:"selection"`
	Form        models.RecordForm `json:"form"`
	Date        string            `json:"date"`
	OpenedBy    string            `json:"opened_by,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Submission operations.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
)

// SubmitResult reports which persistence operation handled a submission.
type SubmitResult struct {
	Operation string              `json:"operation"`
	Record    *models.DailyRecord `json:"record"`
}
