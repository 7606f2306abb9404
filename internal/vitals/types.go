package vitals

// PhysiologicalState представляет физиологическое состояние носителя браслета
type PhysiologicalState string

const (
	StateResting          PhysiologicalState = "RESTING"
	StateSleeping         PhysiologicalState = "SLEEPING"
	StateWarmup           PhysiologicalState = "WARMUP"
	StateLightActivity    PhysiologicalState = "LIGHT_ACTIVITY"
	StateModerateActivity PhysiologicalState = "MODERATE_ACTIVITY"
	StateIntenseActivity  PhysiologicalState = "INTENSE_ACTIVITY"
	StateRecovery         PhysiologicalState = "RECOVERY"
	StateCooldown         PhysiologicalState = "COOLDOWN"
	StateStressed         PhysiologicalState = "STRESSED"
)

// AllStates перечисляет все состояния в стабильном порядке
var AllStates = []PhysiologicalState{
	StateResting,
	StateSleeping,
	StateWarmup,
	StateLightActivity,
	StateModerateActivity,
	StateIntenseActivity,
	StateRecovery,
	StateCooldown,
	StateStressed,
}

// IsActive сообщает, является ли состояние тренировочным.
// Тренировочные состояния накапливают нагрузку и расходуют гидратацию.
func (s PhysiologicalState) IsActive() bool {
	switch s {
	case StateWarmup, StateLightActivity, StateModerateActivity, StateIntenseActivity:
		return true
	}
	return false
}

// Valid проверяет, что состояние известно
func (s PhysiologicalState) Valid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// ActivityType представляет тип активности тренировочной сессии
type ActivityType string

const (
	ActivityRunning    ActivityType = "running"
	ActivityCycling    ActivityType = "cycling"
	ActivitySwimming   ActivityType = "swimming"
	ActivityStrength   ActivityType = "strength"
	ActivityHIIT       ActivityType = "hiit"
	ActivityWalking    ActivityType = "walking"
	ActivityYoga       ActivityType = "yoga"
	ActivityStretching ActivityType = "stretching"
	ActivityMeditation ActivityType = "meditation"
)

// AllActivities перечисляет все типы активности
var AllActivities = []ActivityType{
	ActivityRunning,
	ActivityCycling,
	ActivitySwimming,
	ActivityStrength,
	ActivityHIIT,
	ActivityWalking,
	ActivityYoga,
	ActivityStretching,
	ActivityMeditation,
}

// BaseState возвращает состояние, к которому ведет активность.
// Неизвестный тип трактуется как умеренная нагрузка.
func (a ActivityType) BaseState() PhysiologicalState {
	switch a {
	case ActivityRunning, ActivityStrength, ActivityHIIT:
		return StateIntenseActivity
	case ActivityCycling, ActivitySwimming:
		return StateModerateActivity
	case ActivityWalking, ActivityYoga, ActivityStretching:
		return StateLightActivity
	case ActivityMeditation:
		return StateResting
	default:
		return StateModerateActivity
	}
}

// Valid проверяет, что тип активности известен
func (a ActivityType) Valid() bool {
	for _, known := range AllActivities {
		if a == known {
			return true
		}
	}
	return false
}

// FatigueLevel представляет уровень мышечной усталости
type FatigueLevel string

const (
	FatigueLow    FatigueLevel = "low"
	FatigueMedium FatigueLevel = "medium"
	FatigueHigh   FatigueLevel = "high"
)
