package recordform

import (
	"github.com/lib/pq"

	"github.com/noah-isme/care-record-api/internal/models"
)

// NewDefaultForm returns the field values of a new, empty record. Shift is left
// blank; it is filled from the clock when a session mounts.
func NewDefaultForm() models.RecordForm {
	return models.RecordForm{
		BT:            models.TemperatureNoFever,
		BP:            models.BloodPressureNormal,
		HR:            models.HeartRateNormal,
		RR:            models.RespiratoryRateNormal,
		O2Sat:         models.OxygenSaturationNormal,
		Conscious:     models.ConsciousnessAlert,
		BreathPattern: models.BreathPatternNormal,
		EatMethod:     models.EatMethodSelf,
		FoodType:      models.FoodTypeBreastMilk,
		FoodIntake:    pq.StringArray{""},
		ExtraFood:     models.FoodBehaviorNormal,
	}
}

// formFromRecord copies a stored record into a form. An empty food intake list
// becomes a single blank entry.
func formFromRecord(record models.DailyRecord) models.RecordForm {
	form := record.RecordForm.Clone()
	if len(form.FoodIntake) == 0 {
		form.FoodIntake = pq.StringArray{""}
	}
	return form
}
