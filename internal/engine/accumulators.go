package engine

import (
	"log"
	"math"

	"github.com/wellband/bracelet/internal/vitals"
)

const (
	batteryDrainPerTick = 0.01
	batteryLowThreshold = 15.0

	hydrationDrainIntense = 0.15
	hydrationDrainActive  = 0.06
	hydrationRecovery     = 0.02
)

// loadIncrement возвращает прирост тренировочной нагрузки за тик
func loadIncrement(state vitals.PhysiologicalState) float64 {
	switch state {
	case vitals.StateIntenseActivity:
		return 0.6
	case vitals.StateModerateActivity:
		return 0.35
	case vitals.StateWarmup:
		return 0.2
	case vitals.StateLightActivity:
		return 0.15
	default:
		return 0
	}
}

// updateAccumulators обновляет нагрузку и гидратацию по состоянию тика.
// Нагрузка не убывает сама: ее сбрасывает только новая сессия.
func (e *Engine) updateAccumulators(state vitals.PhysiologicalState) {
	e.trainingLoad = math.Min(e.trainingLoad+loadIncrement(state), 100)

	switch {
	case state == vitals.StateIntenseActivity:
		e.hydration -= hydrationDrainIntense
	case state.IsActive():
		e.hydration -= hydrationDrainActive
	default:
		e.hydration += hydrationRecovery
	}
	e.hydration = clamp(e.hydration, 0, 100)
}

// drainBattery списывает заряд за тик и сообщает о пересечении порога разряда.
// Уведомление срабатывает ровно один раз на пересечение: повторно его
// взводит только ResetBattery.
func (e *Engine) drainBattery() bool {
	prev := e.battery
	e.battery = math.Max(e.battery-batteryDrainPerTick, 0)

	if e.batteryAlerted {
		return false
	}
	if prev > batteryLowThreshold && e.battery <= batteryLowThreshold {
		e.batteryAlerted = true
		log.Printf("[ENGINE] Battery low: %.2f%%", e.battery)
		return true
	}
	return false
}

// recoveryMinutes вычисляет рекомендованные минуты восстановления
// из накопленной нагрузки и текущего пульса
func recoveryMinutes(load, heartRate float64) int {
	return roundInt(load*2.5 + math.Max(0, heartRate-80)*0.5)
}
