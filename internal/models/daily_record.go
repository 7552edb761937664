package models

import (
	"time"

	"github.com/lib/pq"
)

// Field names of a record form. They double as the JSON keys of the wire format.
const (
	FieldBT            = "BT"
	FieldBP            = "BP"
	FieldHR            = "HR"
	FieldRR            = "RR"
	FieldO2Sat         = "O2sat"
	FieldConscious     = "conscious"
	FieldBreathPattern = "breath_pattern"
	FieldEatMethod     = "eat_method"
	FieldFoodType      = "food_type"
	FieldFoodIntake    = "food_intake"
	FieldSleep         = "sleep"
	FieldExcretion     = "excretion"
	FieldExtraSymptoms = "extra_symptoms"
	FieldExtraFood     = "extra_food"
	FieldNotes         = "notes"
	FieldShift         = "shift"
)

// RecordForm holds the caregiver-authored values of a daily record.
type RecordForm struct {
	BT            BodyTemperature  `db:"bt" json:"BT" validate:"vocab"`
	BP            BloodPressure    `db:"bp" json:"BP" validate:"vocab"`
	HR            HeartRate        `db:"hr" json:"HR" validate:"vocab"`
	RR            RespiratoryRate  `db:"rr" json:"RR" validate:"vocab"`
	O2Sat         OxygenSaturation `db:"o2sat" json:"O2sat" validate:"vocab"`
	Conscious     Consciousness    `db:"conscious" json:"conscious" validate:"vocab"`
	BreathPattern BreathPattern    `db:"breath_pattern" json:"breath_pattern" validate:"vocab"`
	EatMethod     EatMethod        `db:"eat_method" json:"eat_method" validate:"vocab"`
	FoodType      FoodType         `db:"food_type" json:"food_type" validate:"vocab"`
	FoodIntake    pq.StringArray   `db:"food_intake" json:"food_intake"`
	Sleep         string           `db:"sleep" json:"sleep"`
	Excretion     string           `db:"excretion" json:"excretion"`
	ExtraSymptoms string           `db:"extra_symptoms" json:"extra_symptoms"`
	ExtraFood     FoodBehavior     `db:"extra_food" json:"extra_food" validate:"vocab"`
	Notes         string           `db:"notes" json:"notes"`
	Shift         Shift            `db:"shift" json:"shift" validate:"omitempty,vocab"`
}

// Clone returns a copy that shares no slice storage with the receiver.
func (f RecordForm) Clone() RecordForm {
	if f.FoodIntake != nil {
		f.FoodIntake = append(pq.StringArray(nil), f.FoodIntake...)
	}
	return f
}

// DailyRecord is one dated entry of a patient's vitals and condition.
type DailyRecord struct {
	ID         string    `db:"id" json:"id"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	RecordDate time.Time `db:"record_date" json:"record_date"`
	RecordForm
	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
