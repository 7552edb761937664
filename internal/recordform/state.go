package recordform

import (
	"encoding/json"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
)

// State names the position of a form in the selection state machine.
type State string

const (
	StateNoPatientSelected             State = "no_patient_selected"
	StatePatientSelectedNoRecord       State = "patient_selected_no_record"
	StatePatientSelectedExistingRecord State = "patient_selected_existing_record"
	StatePatientSelectedNewRecord      State = "patient_selected_new_record"
)

// Snapshot is the persisted part of a machine. The selection is not included;
// it lives in the shared SelectionContext.
type Snapshot struct {
	Header  dto.FormHeader    `json:"header"`
	Form    models.RecordForm `json:"form"`
	Mounted bool              `json:"mounted"`
}

// Machine keeps a record form consistent with the current selection.
// It is not safe for concurrent use; callers serialise transitions.
type Machine struct {
	selection SelectionContext
	now       Clock
	header    dto.FormHeader
	form      models.RecordForm
	mounted   bool
}

// NewMachine returns an unmounted machine with an empty header and default form.
func NewMachine(selection SelectionContext, now Clock) *Machine {
	return Restore(Snapshot{Form: NewDefaultForm()}, selection, now)
}

// Restore rebuilds a machine from a snapshot.
func Restore(snapshot Snapshot, selection SelectionContext, now Clock) *Machine {
	if selection == nil {
		selection = NewCell(dto.Selection{})
	}
	if now == nil {
		now = SystemClock(nil)
	}
	return &Machine{
		selection: selection,
		now:       now,
		header:    snapshot.Header,
		form:      snapshot.Form.Clone(),
		mounted:   snapshot.Mounted,
	}
}

// Snapshot captures header, form and mount status.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Header: m.header, Form: m.form.Clone(), Mounted: m.mounted}
}

// Header returns the derived patient header.
func (m *Machine) Header() dto.FormHeader { return m.header }

// Form returns a copy of the record form.
func (m *Machine) Form() models.RecordForm { return m.form.Clone() }

// Selection returns the current shared selection.
func (m *Machine) Selection() dto.Selection { return m.selection.Selection() }

// State derives the machine state from the selection.
func (m *Machine) State() State {
	sel := m.selection.Selection()
	switch {
	case sel.PatientID == "":
		return StateNoPatientSelected
	case sel.RecordID == "":
		return StatePatientSelectedNoRecord
	case sel.RecordID == dto.CreateNewRecordID:
		return StatePatientSelectedNewRecord
	default:
		return StatePatientSelectedExistingRecord
	}
}

// HeaderStale reports that the selected patient was not found in the directory,
// so the header still describes an earlier patient (or none).
func (m *Machine) HeaderStale() bool {
	sel := m.selection.Selection()
	return sel.PatientID != "" && sel.PatientID != m.header.PatientID
}

// Mount fills the shift from the clock. Only the first call has an effect.
func (m *Machine) Mount() {
	if m.mounted {
		return
	}
	m.form.Shift = CurrentShift(m.now())
	m.mounted = true
}

// Unmount discards header and form. The shared selection is left to its other owners.
func (m *Machine) Unmount() {
	m.header = dto.FormHeader{}
	m.form = NewDefaultForm()
	m.mounted = false
}

// SelectPatient selects patientID with no record. When the patient is in the
// directory the header is rebuilt and the form reset, discarding unsaved edits.
// A patient missing from the directory leaves header and form untouched; the
// return value reports whether it was found.
func (m *Machine) SelectPatient(patientID string, directory []models.Patient) bool {
	m.selection.SetSelection(dto.Selection{PatientID: patientID})
	for _, p := range directory {
		if p.ID != patientID {
			continue
		}
		age := CalculateAge(p.DOB, m.now())
		m.header = dto.FormHeader{
			PatientID:   p.ID,
			HN:          p.HN,
			NameSurname: p.FullName(),
			Sex:         p.Gender,
			Age:         &age,
		}
		m.form = NewDefaultForm()
		return true
	}
	return false
}

// SelectRecord points the selection at recordID, keeping the patient. A record
// present in records replaces the whole form; anything else (the create-new
// sentinel, an unknown id, an empty id) resets the form to defaults.
func (m *Machine) SelectRecord(recordID string, records []models.DailyRecord) bool {
	m.selection.UpdateSelection(func(prev dto.Selection) dto.Selection {
		prev.RecordID = recordID
		return prev
	})
	if recordID != "" && recordID != dto.CreateNewRecordID {
		for _, r := range records {
			if r.ID == recordID {
				m.form = formFromRecord(r)
				return true
			}
		}
	}
	m.form = NewDefaultForm()
	return false
}

// EditField sets a single field; every other field keeps its value.
func (m *Machine) EditField(name string, raw json.RawMessage) error {
	next, err := ApplyEdit(m.form, name, raw)
	if err != nil {
		return err
	}
	m.form = next
	return nil
}
