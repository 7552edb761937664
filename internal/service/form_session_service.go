package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/recordform"
	"github.com/noah-isme/care-record-api/internal/repository"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
	"github.com/noah-isme/care-record-api/pkg/logger"
)

type formSessionStore interface {
	Get(ctx context.Context, id string) (*repository.FormSession, error)
	Save(ctx context.Context, session *repository.FormSession) error
	Delete(ctx context.Context, id string) error
}

type patientDirectory interface {
	List(ctx context.Context) ([]models.Patient, error)
	Options(ctx context.Context, query string) ([]dto.Option, error)
}

type recordStore interface {
	ListForPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error)
	RecordOptions(ctx context.Context, patientID, query string) ([]dto.Option, error)
	AddRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error)
	UpdateRecord(ctx context.Context, sub dto.RecordSubmission, actor Actor) (*models.DailyRecord, error)
}

// FormSessionConfig configures the form session service.
type FormSessionConfig struct {
	Location *time.Location
	// Clock overrides the wall clock, mainly for tests.
	Clock recordform.Clock
}

// FormSessionService hosts record form sessions: one selection state machine per session,
// persisted between requests. Transitions on the same session are serialised.
type FormSessionService struct {
	store     formSessionStore
	patients  patientDirectory
	records   recordStore
	validator *validator.Validate
	policy    recordform.Policy
	metrics   *MetricsService
	logger    *zap.Logger
	loc       *time.Location
	clock     recordform.Clock
	locks     *sessionLocks
}

// NewFormSessionService constructs the form session service.
func NewFormSessionService(store formSessionStore, patients patientDirectory, records recordStore, validate *validator.Validate, cfg FormSessionConfig, metrics *MetricsService, log *zap.Logger) *FormSessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = recordform.SystemClock(cfg.Location)
	}
	return &FormSessionService{
		store:     store,
		patients:  patients,
		records:   records,
		validator: validate,
		policy:    SubmissionPolicy(validate),
		metrics:   metrics,
		logger:    log,
		loc:       cfg.Location,
		clock:     cfg.Clock,
		locks:     newSessionLocks(),
	}
}

// Open starts a new session and stamps the current shift onto its form.
func (s *FormSessionService) Open(ctx context.Context, actor Actor) (*dto.FormSessionView, error) {
	session := &repository.FormSession{ID: uuid.NewString(), OpenedBy: actor.UserID}
	machine := recordform.NewMachine(recordform.NewCell(dto.Selection{}), s.clock)
	machine.Mount()

	if err := s.save(ctx, session, machine); err != nil {
		return nil, err
	}
	s.metrics.SessionOpened()
	logger.WithContext(ctx, s.logger).Info("form session opened",
		zap.String("session_id", session.ID),
		zap.String("shift", string(machine.Form().Shift)),
	)
	return s.view(session, machine), nil
}

// Get returns the current view of a session.
func (s *FormSessionService) Get(ctx context.Context, id string) (*dto.FormSessionView, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, machine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session, machine), nil
}

// SelectPatient selects a patient and resets the header and form. Selecting a patient absent
// from the directory still moves the selection but leaves header and form untouched.
func (s *FormSessionService) SelectPatient(ctx context.Context, id string, req dto.SelectPatientRequest) (*dto.FormSessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid patient selection")
	}

	unlock := s.locks.lock(id)
	defer unlock()

	session, machine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	directory, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}

	if !machine.SelectPatient(req.PatientID, directory) {
		logger.WithContext(ctx, s.logger).Warn("selected patient not in directory, header kept",
			zap.String("session_id", id),
			zap.String("patient_id", req.PatientID),
		)
	}
	if err := s.save(ctx, session, machine); err != nil {
		return nil, err
	}
	return s.view(session, machine), nil
}

// SelectRecord selects a stored record, the create-new sentinel, or nothing, and loads the form accordingly.
func (s *FormSessionService) SelectRecord(ctx context.Context, id string, req dto.SelectRecordRequest) (*dto.FormSessionView, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, machine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var records []models.DailyRecord
	if patientID := machine.Selection().PatientID; patientID != "" {
		records, err = s.records.ListForPatient(ctx, patientID)
		if err != nil {
			return nil, err
		}
	}

	machine.SelectRecord(req.RecordID, records)
	if err := s.save(ctx, session, machine); err != nil {
		return nil, err
	}
	return s.view(session, machine), nil
}

// EditField sets one form field.
func (s *FormSessionService) EditField(ctx context.Context, id string, edit dto.FieldEdit) (*dto.FormSessionView, error) {
	if err := s.validator.Struct(edit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid field edit")
	}

	unlock := s.locks.lock(id)
	defer unlock()

	session, machine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := machine.EditField(edit.Name, edit.Value); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, machine); err != nil {
		return nil, err
	}
	return s.view(session, machine), nil
}

// Submit builds the submission from the session and dispatches exactly one create or update.
// The session itself is left as it was.
func (s *FormSessionService) Submit(ctx context.Context, id string, actor Actor) (*dto.SubmitResult, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	_, machine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	sub, err := recordform.BuildSubmission(machine, s.policy)
	if err != nil {
		operation := dto.OperationCreate
		if machine.State() == recordform.StatePatientSelectedExistingRecord {
			operation = dto.OperationUpdate
		}
		s.metrics.RecordSubmission(operation, OutcomeRejected)
		return nil, err
	}

	result, err := recordform.Dispatch(ctx, sub, actorWriter{store: s.records, actor: actor})
	if err != nil {
		s.metrics.RecordSubmission(result.Operation, OutcomeFailed)
		logger.WithContext(ctx, s.logger).Warn("record submission failed",
			zap.String("session_id", id),
			zap.String("operation", result.Operation),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.RecordSubmission(result.Operation, OutcomeSuccess)
	return &result, nil
}

// PatientOptions lists patient options for the session's patient picker.
func (s *FormSessionService) PatientOptions(ctx context.Context, id, query string) ([]dto.Option, error) {
	if _, _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	return s.patients.Options(ctx, query)
}

// RecordOptions lists record options for the session's selected patient. Without a patient only
// the create-new option is offered.
func (s *FormSessionService) RecordOptions(ctx context.Context, id, query string) ([]dto.Option, error) {
	session, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Selection.PatientID == "" {
		return recordform.Search(recordform.RecordOptions(nil), query), nil
	}
	return s.records.RecordOptions(ctx, session.Selection.PatientID, query)
}

// Close destroys a session.
func (s *FormSessionService) Close(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	_, machine, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	machine.Unmount()
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close form session")
	}
	s.metrics.SessionClosed()
	logger.WithContext(ctx, s.logger).Info("form session closed", zap.String("session_id", id))
	return nil
}

func (s *FormSessionService) load(ctx context.Context, id string) (*repository.FormSession, *recordform.Machine, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, nil, err
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load form session")
	}
	machine := recordform.Restore(session.Machine, recordform.NewCell(session.Selection), s.clock)
	return session, machine, nil
}

func (s *FormSessionService) save(ctx context.Context, session *repository.FormSession, machine *recordform.Machine) error {
	session.Selection = machine.Selection()
	session.Machine = machine.Snapshot()
	session.UpdatedAt = s.clock().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save form session")
	}
	return nil
}

func (s *FormSessionService) view(session *repository.FormSession, machine *recordform.Machine) *dto.FormSessionView {
	return &dto.FormSessionView{
		ID:          session.ID,
		State:       string(machine.State()),
		Header:      machine.Header(),
		HeaderStale: machine.HeaderStale(),
		Selection:   machine.Selection(),
		Form:        machine.Form(),
		Date:        s.clock().In(s.loc).Format("2006-01-02"),
		OpenedBy:    session.OpenedBy,
		UpdatedAt:   session.UpdatedAt,
	}
}

// actorWriter adapts the record store to recordform.RecordWriter for one actor.
type actorWriter struct {
	store recordStore
	actor Actor
}

func (w actorWriter) AddRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error) {
	return w.store.AddRecord(ctx, sub, w.actor)
}

func (w actorWriter) UpdateRecord(ctx context.Context, sub dto.RecordSubmission) (*models.DailyRecord, error) {
	return w.store.UpdateRecord(ctx, sub, w.actor)
}

// sessionLocks hands out one mutex per session id and forgets it once nobody holds it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
