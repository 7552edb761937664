package models

// BodyTemperature is the BT assessment of a daily record.
type BodyTemperature string

const (
	TemperatureNoFever   BodyTemperature = "ไม่มีไข้"
	TemperatureLowFever  BodyTemperature = "ไข้ต่ำ"
	TemperatureHighFever BodyTemperature = "ไข้สูง"
)

// BloodPressure is the BP assessment of a daily record.
type BloodPressure string

const (
	BloodPressureNormal BloodPressure = "ปกติ"
	BloodPressureLow    BloodPressure = "ต่ำ"
	BloodPressureHigh   BloodPressure = "สูง"
)

// HeartRate is the HR assessment of a daily record.
type HeartRate string

const (
	HeartRateNormal HeartRate = "ปกติ"
	HeartRateSlow   HeartRate = "ช้า"
	HeartRateFast   HeartRate = "เร็ว"
)

// RespiratoryRate is the RR assessment of a daily record.
type RespiratoryRate string

const (
	RespiratoryRateNormal RespiratoryRate = "ปกติ"
	RespiratoryRateSlow   RespiratoryRate = "ช้า"
	RespiratoryRateFast   RespiratoryRate = "เร็ว"
)

// OxygenSaturation is the O2sat assessment of a daily record.
type OxygenSaturation string

const (
	OxygenSaturationNormal OxygenSaturation = "ปกติ"
	OxygenSaturationLow    OxygenSaturation = "ต่ำ"
)

// Consciousness is the level of consciousness observed.
type Consciousness string

const (
	ConsciousnessAlert       Consciousness = "ตื่น รู้สึกตัวดี"
	ConsciousnessAsleep      Consciousness = "หลับ"
	ConsciousnessDrowsy      Consciousness = "ซึม"
	ConsciousnessConfused    Consciousness = "สับสน"
	ConsciousnessUnconscious Consciousness = "ไม่รู้สึกตัว"
)

// BreathPattern describes how the patient is breathing.
type BreathPattern string

const (
	BreathPatternNormal BreathPattern = "หายใจปกติ"
	BreathPatternSlow   BreathPattern = "หายใจช้า"
	BreathPatternRapid  BreathPattern = "หายใจเร็ว หายใจหอบเหนื่อย"
)

// EatMethod describes how the patient is fed.
type EatMethod string

const (
	EatMethodSelf    EatMethod = "รับประทานเองได้"
	EatMethodTubeFed EatMethod = "ใส่สายยางให้อาหาร"
)

// FoodType is the main kind of food given.
type FoodType string

const (
	FoodTypeBreastMilk FoodType = "นมแม่"
	FoodTypeFormula    FoodType = "นมผสม"
	FoodTypeSolid      FoodType = "อาหารแข็ง"
	FoodTypeOther      FoodType = "อาหารอื่นๆ"
)

// FoodBehavior is the feeding behaviour stored in the extra_food field.
type FoodBehavior string

const (
	FoodBehaviorNormal  FoodBehavior = "ตามปกติ"
	FoodBehaviorLittle  FoodBehavior = "รับประทานน้อย"
	FoodBehaviorRefused FoodBehavior = "ไม่รับประทาน"
)

// Shift is the duty period a record belongs to.
type Shift string

const (
	ShiftMorning   Shift = "morning-shift"
	ShiftAfternoon Shift = "afternoon-shift"
	ShiftNight     Shift = "night-shift"
)

var (
	temperatureOptions      = []BodyTemperature{TemperatureNoFever, TemperatureLowFever, TemperatureHighFever}
	bloodPressureOptions    = []BloodPressure{BloodPressureNormal, BloodPressureLow, BloodPressureHigh}
	heartRateOptions        = []HeartRate{HeartRateNormal, HeartRateSlow, HeartRateFast}
	respiratoryRateOptions  = []RespiratoryRate{RespiratoryRateNormal, RespiratoryRateSlow, RespiratoryRateFast}
	oxygenSaturationOptions = []OxygenSaturation{OxygenSaturationNormal, OxygenSaturationLow}
	consciousnessOptions    = []Consciousness{ConsciousnessAlert, ConsciousnessAsleep, ConsciousnessDrowsy, ConsciousnessConfused, ConsciousnessUnconscious}
	breathPatternOptions    = []BreathPattern{BreathPatternNormal, BreathPatternSlow, BreathPatternRapid}
	eatMethodOptions        = []EatMethod{EatMethodSelf, EatMethodTubeFed}
	foodTypeOptions         = []FoodType{FoodTypeBreastMilk, FoodTypeFormula, FoodTypeSolid, FoodTypeOther}
	foodBehaviorOptions     = []FoodBehavior{FoodBehaviorNormal, FoodBehaviorLittle, FoodBehaviorRefused}
	shiftOptions            = []Shift{ShiftMorning, ShiftAfternoon, ShiftNight}
)

func (v BodyTemperature) Valid() bool  { return contains(temperatureOptions, v) }
func (v BloodPressure) Valid() bool    { return contains(bloodPressureOptions, v) }
func (v HeartRate) Valid() bool        { return contains(heartRateOptions, v) }
func (v RespiratoryRate) Valid() bool  { return contains(respiratoryRateOptions, v) }
func (v OxygenSaturation) Valid() bool { return contains(oxygenSaturationOptions, v) }
func (v Consciousness) Valid() bool    { return contains(consciousnessOptions, v) }
func (v BreathPattern) Valid() bool    { return contains(breathPatternOptions, v) }
func (v EatMethod) Valid() bool        { return contains(eatMethodOptions, v) }
func (v FoodType) Valid() bool         { return contains(foodTypeOptions, v) }
func (v FoodBehavior) Valid() bool     { return contains(foodBehaviorOptions, v) }
func (v Shift) Valid() bool            { return contains(shiftOptions, v) }

// Label returns the display label of the shift including its hours.
func (v Shift) Label() string {
	switch v {
	case ShiftMorning:
		return "เวรเช้า (08:00 - 16:00)"
	case ShiftAfternoon:
		return "เวรบ่าย (16:00 - 23:59)"
	case ShiftNight:
		return "เวรดึก (00:00 - 08:00)"
	default:
		return ""
	}
}

// Enum is implemented by every closed vocabulary type.
type Enum interface {
	Valid() bool
}

// VocabularyOption is one selectable value of a vocabulary field.
type VocabularyOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldVocabulary describes a categorical form field and its allowed options.
type FieldVocabulary struct {
	Name     string             `json:"name"`
	Label    string             `json:"label"`
	Section  string             `json:"section"`
	Required bool               `json:"required"`
	Options  []VocabularyOption `json:"options"`
}

// Form sections.
const (
	SectionShift    = "shift"
	SectionVitals   = "vital_signs"
	SectionSymptoms = "symptoms"
	SectionFeeding  = "feeding"
)

// VocabularyTable lists every categorical field in display order.
func VocabularyTable() []FieldVocabulary {
	shifts := make([]VocabularyOption, 0, len(shiftOptions))
	for _, s := range shiftOptions {
		shifts = append(shifts, VocabularyOption{Value: string(s), Label: s.Label()})
	}
	return []FieldVocabulary{
		{Name: FieldShift, Label: "เวร", Section: SectionShift, Required: true, Options: shifts},
		{Name: FieldBT, Label: "อุณหภูมิ (BT)", Section: SectionVitals, Required: true, Options: plain(temperatureOptions)},
		{Name: FieldBP, Label: "ความดันโลหิต (BP)", Section: SectionVitals, Required: true, Options: plain(bloodPressureOptions)},
		{Name: FieldHR, Label: "อัตราการเต้นของหัวใจ (HR)", Section: SectionVitals, Required: true, Options: plain(heartRateOptions)},
		{Name: FieldRR, Label: "อัตราการหายใจ (RR)", Section: SectionVitals, Required: true, Options: plain(respiratoryRateOptions)},
		{Name: FieldO2Sat, Label: "ค่าออกซิเจนในเลือด (O2sat)", Section: SectionVitals, Required: true, Options: plain(oxygenSaturationOptions)},
		{Name: FieldConscious, Label: "ระดับความรู้สึกตัว", Section: SectionSymptoms, Required: true, Options: plain(consciousnessOptions)},
		{Name: FieldBreathPattern, Label: "ลักษณะการหายใจ", Section: SectionSymptoms, Required: true, Options: plain(breathPatternOptions)},
		{Name: FieldEatMethod, Label: "รูปแบบการรับประทานอาหาร", Section: SectionFeeding, Required: true, Options: plain(eatMethodOptions)},
		{Name: FieldFoodType, Label: "อาหาร", Section: SectionFeeding, Required: true, Options: plain(foodTypeOptions)},
		{Name: FieldExtraFood, Label: "พฤติกรรมการรับประทานอาหาร", Section: SectionFeeding, Required: true, Options: plain(foodBehaviorOptions)},
	}
}

func plain[T ~string](values []T) []VocabularyOption {
	out := make([]VocabularyOption, 0, len(values))
	for _, v := range values {
		out = append(out, VocabularyOption{Value: string(v), Label: string(v)})
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
