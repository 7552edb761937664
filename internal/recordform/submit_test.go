package recordform

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
)

type recordWriterStub struct {
	added   []dto.RecordSubmission
	updated []dto.RecordSubmission
	err     error
}

func (s *recordWriterStub) AddRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error) {
	s.added = append(s.added, sub)
	if s.err != nil {
		return nil, s.err
	}
	return &models.DailyRecord{ID: "new-id", PatientID: sub.PatientID, RecordForm: sub.Record.RecordForm}, nil
}

func (s *recordWriterStub) UpdateRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error) {
	s.updated = append(s.updated, sub)
	if s.err != nil {
		return nil, s.err
	}
	return &models.DailyRecord{ID: sub.Record.ID, PatientID: sub.PatientID, RecordForm: sub.Record.RecordForm}, nil
}

func preparedMachine(t *testing.T) *Machine {
	t.Helper()
	m, _ := newTestMachine(time.Date(2026, 10, 19, 9, 0, 0, 0, bangkok))
	m.Mount()
	require.True(t, m.SelectPatient("p1", samplePatients()))
	return m
}

func TestSubmitExistingRecordDispatchesUpdate(t *testing.T) {
	m := preparedMachine(t)
	require.True(t, m.SelectRecord("r1", sampleRecords()))
	require.NoError(t, m.EditField(models.FieldNotes, json.RawMessage(`"updated"`)))

	sub, err := BuildSubmission(m, nil)
	require.NoError(t, err)
	writer := &recordWriterStub{}
	result, err := Dispatch(context.Background(), sub, writer)
	require.NoError(t, err)

	assert.Equal(t, dto.OperationUpdate, result.Operation)
	assert.Empty(t, writer.added)
	require.Len(t, writer.updated, 1)
	got := writer.updated[0]
	assert.Equal(t, "p1", got.PatientID)
	assert.Equal(t, "r1", got.Record.ID)
	assert.Equal(t, m.Form(), got.Record.RecordForm)
}

func TestSubmitWithoutExistingRecordDispatchesCreate(t *testing.T) {
	for _, recordID := range []string{"", dto.CreateNewRecordID} {
		t.Run("record="+recordID, func(t *testing.T) {
			m := preparedMachine(t)
			if recordID != "" {
				m.SelectRecord(recordID, sampleRecords())
			}
			sub, err := BuildSubmission(m, AllowAll)
			require.NoError(t, err)

			writer := &recordWriterStub{}
			result, err := Dispatch(context.Background(), sub, writer)
			require.NoError(t, err)
			assert.Equal(t, dto.OperationCreate, result.Operation)
			assert.Empty(t, writer.updated)
			require.Len(t, writer.added, 1)
			assert.Equal(t, recordID, writer.added[0].Record.ID)
			assert.Equal(t, "p1", writer.added[0].PatientID)
		})
	}
}

func TestSubmitDoesNotMoveSelection(t *testing.T) {
	m := preparedMachine(t)
	m.SelectRecord(dto.CreateNewRecordID, nil)
	sub, err := BuildSubmission(m, nil)
	require.NoError(t, err)
	_, err = Dispatch(context.Background(), sub, &recordWriterStub{})
	require.NoError(t, err)
	assert.Equal(t, dto.CreateNewRecordID, m.Selection().RecordID)
}

func TestBuildSubmissionPolicyRejects(t *testing.T) {
	m, _ := newTestMachine(time.Now())
	policy := PolicyFunc(func(sub dto.RecordSubmission) error {
		if sub.PatientID == "" {
			return errors.New("patient required")
		}
		return nil
	})
	_, err := BuildSubmission(m, policy)
	require.EqualError(t, err, "patient required")
}

func TestDispatchPropagatesWriterError(t *testing.T) {
	writer := &recordWriterStub{err: errors.New("db down")}
	result, err := Dispatch(context.Background(), dto.RecordSubmission{PatientID: "p1"}, writer)
	require.Error(t, err)
	assert.Equal(t, dto.OperationCreate, result.Operation)
	assert.Nil(t, result.Record)
	assert.Len(t, writer.added, 1)
}
