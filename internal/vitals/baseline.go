package vitals

// Range задает физиологический коридор значений канала
type Range struct {
	Lo float64
	Hi float64
}

// Mid возвращает середину коридора
func (r Range) Mid() float64 {
	return (r.Lo + r.Hi) / 2
}

// Width возвращает ширину коридора
func (r Range) Width() float64 {
	return r.Hi - r.Lo
}

// Contains проверяет попадание значения в коридор с допуском slack
func (r Range) Contains(value, slack float64) bool {
	return value >= r.Lo-slack && value <= r.Hi+slack
}

// Baseline содержит коридоры всех десяти каналов для одного состояния
// и уровень усталости по умолчанию
type Baseline struct {
	HeartRate Range // уд/мин
	HRV       Range // мс
	SpO2      Range // %
	SkinTemp  Range // °C
	Stress    Range // индекс 0-100
	MuscleO2  Range // SmO2, %
	RespRate  Range // вдохов/мин
	VO2       Range // мл/кг/мин
	Lactate   Range // ммоль/л
	Cadence   Range // шагов/об в минуту
	Fatigue   FatigueLevel
}

// baselines - неизменяемая таблица коридоров по состояниям
var baselines = map[PhysiologicalState]Baseline{
	StateResting: {
		HeartRate: Range{60, 70},
		HRV:       Range{45, 65},
		SpO2:      Range{96, 99},
		SkinTemp:  Range{36.3, 36.7},
		Stress:    Range{15, 30},
		MuscleO2:  Range{65, 75},
		RespRate:  Range{12, 16},
		VO2:       Range{3.5, 5},
		Lactate:   Range{0.5, 1.2},
		Cadence:   Range{0, 0},
		Fatigue:   FatigueLow,
	},
	StateSleeping: {
		HeartRate: Range{48, 58},
		HRV:       Range{60, 85},
		SpO2:      Range{95, 98},
		SkinTemp:  Range{36.0, 36.4},
		Stress:    Range{5, 15},
		MuscleO2:  Range{68, 78},
		RespRate:  Range{10, 14},
		VO2:       Range{3, 4},
		Lactate:   Range{0.5, 0.9},
		Cadence:   Range{0, 0},
		Fatigue:   FatigueLow,
	},
	StateWarmup: {
		HeartRate: Range{90, 110},
		HRV:       Range{35, 50},
		SpO2:      Range{96, 98},
		SkinTemp:  Range{36.5, 36.9},
		Stress:    Range{25, 40},
		MuscleO2:  Range{60, 70},
		RespRate:  Range{18, 24},
		VO2:       Range{12, 20},
		Lactate:   Range{1.5, 3},
		Cadence:   Range{60, 90},
		Fatigue:   FatigueLow,
	},
	StateLightActivity: {
		HeartRate: Range{95, 115},
		HRV:       Range{30, 45},
		SpO2:      Range{96, 98},
		SkinTemp:  Range{36.6, 37.0},
		Stress:    Range{25, 40},
		MuscleO2:  Range{55, 68},
		RespRate:  Range{20, 26},
		VO2:       Range{15, 25},
		Lactate:   Range{2, 4},
		Cadence:   Range{60, 100},
		Fatigue:   FatigueLow,
	},
	StateModerateActivity: {
		HeartRate: Range{120, 145},
		HRV:       Range{20, 35},
		SpO2:      Range{95, 98},
		SkinTemp:  Range{36.8, 37.3},
		Stress:    Range{35, 55},
		MuscleO2:  Range{45, 60},
		RespRate:  Range{26, 34},
		VO2:       Range{25, 38},
		Lactate:   Range{4, 8},
		Cadence:   Range{75, 105},
		Fatigue:   FatigueMedium,
	},
	StateIntenseActivity: {
		HeartRate: Range{150, 175},
		HRV:       Range{12, 25},
		SpO2:      Range{94, 97},
		SkinTemp:  Range{37.0, 37.6},
		Stress:    Range{50, 75},
		MuscleO2:  Range{30, 50},
		RespRate:  Range{34, 45},
		VO2:       Range{38, 55},
		Lactate:   Range{8, 14},
		Cadence:   Range{85, 115},
		Fatigue:   FatigueHigh,
	},
	StateRecovery: {
		HeartRate: Range{70, 85},
		HRV:       Range{40, 60},
		SpO2:      Range{96, 99},
		SkinTemp:  Range{36.4, 36.8},
		Stress:    Range{20, 35},
		MuscleO2:  Range{60, 72},
		RespRate:  Range{14, 18},
		VO2:       Range{5, 8},
		Lactate:   Range{1.5, 3.5},
		Cadence:   Range{0, 10},
		Fatigue:   FatigueMedium,
	},
	StateCooldown: {
		HeartRate: Range{90, 115},
		HRV:       Range{25, 40},
		SpO2:      Range{95, 98},
		SkinTemp:  Range{36.8, 37.2},
		Stress:    Range{30, 45},
		MuscleO2:  Range{50, 65},
		RespRate:  Range{20, 28},
		VO2:       Range{10, 18},
		Lactate:   Range{4, 8},
		Cadence:   Range{20, 50},
		Fatigue:   FatigueMedium,
	},
	StateStressed: {
		HeartRate: Range{75, 95},
		HRV:       Range{20, 35},
		SpO2:      Range{95, 98},
		SkinTemp:  Range{36.4, 36.8},
		Stress:    Range{60, 85},
		MuscleO2:  Range{62, 72},
		RespRate:  Range{16, 22},
		VO2:       Range{4, 6},
		Lactate:   Range{0.8, 1.5},
		Cadence:   Range{0, 10},
		Fatigue:   FatigueMedium,
	},
}

// For возвращает коридоры каналов для состояния.
// Неизвестное состояние получает коридоры RESTING.
func For(state PhysiologicalState) Baseline {
	if b, ok := baselines[state]; ok {
		return b
	}
	return baselines[StateResting]
}

// Начальные значения каналов нового браслета
const (
	SeedHeartRate = 65.0
	SeedHRV       = 55.0
	SeedSpO2      = 97.0
	SeedSkinTemp  = 36.5
	SeedStress    = 20.0
	SeedMuscleO2  = 72.0
	SeedRespRate  = 14.0
	SeedVO2       = 4.0
	SeedLactate   = 0.8
	SeedCadence   = 0.0
	SeedBattery   = 100.0
	SeedHydration = 95.0
)
