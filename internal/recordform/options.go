package recordform

import (
	"fmt"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
)

// CreateNewRecordLabel is the label of the "create new" record option.
const CreateNewRecordLabel = "Create New Record"

// PatientLabel renders "name surname (HN)".
func PatientLabel(p models.Patient) string {
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Surname, p.HN)
}

// PatientOptions projects the directory into selectable options.
func PatientOptions(patients []models.Patient) []dto.Option {
	options := make([]dto.Option, 0, len(patients))
	for _, p := range patients {
		options = append(options, dto.Option{ID: p.ID, Label: PatientLabel(p)})
	}
	return options
}

// RecordLabel renders "YYYY-MM-DD shift (id)".
func RecordLabel(r models.DailyRecord) string {
	date := r.RecordDate.Format("2006-01-02")
	if r.Shift == "" {
		return fmt.Sprintf("%s (%s)", date, r.ID)
	}
	return fmt.Sprintf("%s %s (%s)", date, r.Shift, r.ID)
}

// RecordOptions lists the "create new" option followed by every stored record.
func RecordOptions(records []models.DailyRecord) []dto.Option {
	options := make([]dto.Option, 0, len(records)+1)
	options = append(options, dto.Option{ID: dto.CreateNewRecordID, Label: CreateNewRecordLabel})
	for _, r := range records {
		options = append(options, dto.Option{ID: r.ID, Label: RecordLabel(r)})
	}
	return options
}
