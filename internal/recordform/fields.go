package recordform

import (
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/noah-isme/care-record-api/internal/models"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

type fieldSetter func(form *models.RecordForm, raw json.RawMessage) error

type enumValue interface {
	~string
	Valid() bool
}

var fieldSetters = map[string]fieldSetter{
	models.FieldBT:            enumField(func(f *models.RecordForm) *models.BodyTemperature { return &f.BT }),
	models.FieldBP:            enumField(func(f *models.RecordForm) *models.BloodPressure { return &f.BP }),
	models.FieldHR:            enumField(func(f *models.RecordForm) *models.HeartRate { return &f.HR }),
	models.FieldRR:            enumField(func(f *models.RecordForm) *models.RespiratoryRate { return &f.RR }),
	models.FieldO2Sat:         enumField(func(f *models.RecordForm) *models.OxygenSaturation { return &f.O2Sat }),
	models.FieldConscious:     enumField(func(f *models.RecordForm) *models.Consciousness { return &f.Conscious }),
	models.FieldBreathPattern: enumField(func(f *models.RecordForm) *models.BreathPattern { return &f.BreathPattern }),
	models.FieldEatMethod:     enumField(func(f *models.RecordForm) *models.EatMethod { return &f.EatMethod }),
	models.FieldFoodType:      enumField(func(f *models.RecordForm) *models.FoodType { return &f.FoodType }),
	models.FieldExtraFood:     enumField(func(f *models.RecordForm) *models.FoodBehavior { return &f.ExtraFood }),
	models.FieldShift:         optionalEnumField(func(f *models.RecordForm) *models.Shift { return &f.Shift }),
	models.FieldSleep:         textField(func(f *models.RecordForm) *string { return &f.Sleep }),
	models.FieldExcretion:     textField(func(f *models.RecordForm) *string { return &f.Excretion }),
	models.FieldExtraSymptoms: textField(func(f *models.RecordForm) *string { return &f.ExtraSymptoms }),
	models.FieldNotes:         textField(func(f *models.RecordForm) *string { return &f.Notes }),
	models.FieldFoodIntake:    setFoodIntake,
}

// KnownField reports whether name is an editable form field.
func KnownField(name string) bool {
	_, ok := fieldSetters[name]
	return ok
}

// ApplyEdit returns form with the single field name set to the JSON value raw.
// Categorical fields only accept values from their vocabulary.
func ApplyEdit(form models.RecordForm, name string, raw json.RawMessage) (models.RecordForm, error) {
	setter, ok := fieldSetters[name]
	if !ok {
		return form, appErrors.Clone(appErrors.ErrUnknownField, fmt.Sprintf("unknown form field %q", name))
	}
	next := form.Clone()
	if err := setter(&next, raw); err != nil {
		return form, err
	}
	return next, nil
}

func enumField[T enumValue](target func(*models.RecordForm) *T) fieldSetter {
	return enumSetter(target, false)
}

// optionalEnumField also accepts "", which clears the field.
func optionalEnumField[T enumValue](target func(*models.RecordForm) *T) fieldSetter {
	return enumSetter(target, true)
}

func enumSetter[T enumValue](target func(*models.RecordForm) *T, allowEmpty bool) fieldSetter {
	return func(form *models.RecordForm, raw json.RawMessage) error {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "value must be a string")
		}
		if !value.Valid() && !(allowEmpty && value == "") {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%q is not an allowed option", string(value)))
		}
		*target(form) = value
		return nil
	}
}

func textField(target func(*models.RecordForm) *string) fieldSetter {
	return func(form *models.RecordForm, raw json.RawMessage) error {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "value must be a string")
		}
		*target(form) = value
		return nil
	}
}

func setFoodIntake(form *models.RecordForm, raw json.RawMessage) error {
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "food_intake must be a list of strings")
	}
	if len(entries) == 0 {
		entries = []string{""}
	}
	form.FoodIntake = pq.StringArray(entries)
	return nil
}
