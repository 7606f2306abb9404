package engine

import (
	"context"
	"log"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

const (
	// Первые 3 минуты тренировки считаются разминкой
	warmupWindow = 3 * time.Minute

	// 5 минут после конца тренировки держится заминка, затем восстановление
	cooldownWindow = 5 * time.Minute

	lookupTimeout = 2 * time.Second
)

// resolveState определяет состояние текущего тика по активным сессиям.
// Вызывается под мьютексом движка. Сбой источника сессий трактуется как
// отсутствие сессии: тик никогда не падает из-за недоступного хранилища.
func (e *Engine) resolveState(now time.Time) vitals.PhysiologicalState {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	activity, err := e.sessions.ActiveActivitySession(ctx)
	if err != nil {
		log.Printf("[WARN] Activity session lookup failed: %v", err)
		activity = nil
	}

	if activity != nil {
		if !e.sessionAnchor.Equal(activity.StartedAt) {
			// Первый тик, увидевший эту сессию: сбрасываем нагрузку и счетчик.
			// Идентичность сессии - ее время старта, поэтому новая сессия,
			// открытая сразу после закрытия прежней, тоже обнуляет нагрузку.
			e.sessionAnchor = activity.StartedAt
			e.sessionObserved = now
			e.activityTicks = 0
			e.trainingLoad = 0
			log.Printf("[ENGINE] Activity session observed: %s, started_at=%s",
				activity.Type, activity.StartedAt.Format(time.RFC3339))
		}
		e.activityTicks++

		base := activity.Type.BaseState()
		if base != vitals.StateResting && now.Sub(activity.StartedAt) < warmupWindow {
			return vitals.StateWarmup
		}
		return base
	}

	if !e.sessionObserved.IsZero() {
		// Сессия только что закончилась. Точного времени конца у движка нет,
		// поэтому оно оценивается по числу тиков, проведенных в сессии.
		end := e.sessionObserved.Add(time.Duration(e.activityTicks) * e.interval)
		if now.Sub(end) < cooldownWindow {
			return vitals.StateCooldown
		}

		e.sessionAnchor = time.Time{}
		e.sessionObserved = time.Time{}
		e.activityTicks = 0
		return vitals.StateRecovery
	}

	sleep, err := e.sessions.ActiveSleepSession(ctx)
	if err != nil {
		log.Printf("[WARN] Sleep session lookup failed: %v", err)
		sleep = nil
	}
	if sleep != nil {
		return vitals.StateSleeping
	}

	return vitals.StateResting
}
