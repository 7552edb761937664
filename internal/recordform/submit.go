package recordform

import (
	"context"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
)

// Policy checks a built submission before it is dispatched.
type Policy interface {
	Check(sub dto.RecordSubmission) error
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(sub dto.RecordSubmission) error

// Check calls f.
func (f PolicyFunc) Check(sub dto.RecordSubmission) error { return f(sub) }

// AllowAll accepts every submission.
var AllowAll Policy = PolicyFunc(func(dto.RecordSubmission) error { return nil })

// RecordWriter persists submissions.
type RecordWriter interface {
	AddRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error)
	UpdateRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error)
}

// BuildSubmission assembles {patientId, record: {...form, id}} from the header,
// the form and the selected record id, then runs policy over it.
func BuildSubmission(m *Machine, policy Policy) (dto.RecordSubmission, error) {
	sub := dto.RecordSubmission{
		PatientID: m.Header().PatientID,
		Record: dto.SubmittedRecord{
			ID:         m.Selection().RecordID,
			RecordForm: m.Form(),
		},
	}
	if policy == nil {
		policy = AllowAll
	}
	if err := policy.Check(sub); err != nil {
		return dto.RecordSubmission{}, err
	}
	return sub, nil
}

// Dispatch makes exactly one call on w: UpdateRecord when the submission targets
// a stored record, AddRecord otherwise.
func Dispatch(ctx context.Context, sub dto.RecordSubmission, w RecordWriter) (dto.SubmitResult, error) {
	if sub.TargetsExisting() {
		record, err := w.UpdateRecord(ctx, sub)
		return dto.SubmitResult{Operation: dto.OperationUpdate, Record: record}, err
	}
	record, err := w.AddRecord(ctx, sub)
	return dto.SubmitResult{Operation: dto.OperationCreate, Record: record}, err
}
