package reading

import (
	"time"
)

// DailySummary представляет дневную сводку показателей.
// Одна строка на календарный день.
type DailySummary struct {
	Date            time.Time `json:"date"`
	RestingHR       int       `json:"resting_hr"`
	AvgHRV          int       `json:"avg_hrv"`
	AvgSpO2         float64   `json:"avg_spo2"`
	SleepHours      float64   `json:"sleep_hours"`
	ActivityMinutes int       `json:"activity_minutes"`
	TrainingLoad    int       `json:"training_load"`
	RecoveryScore   int       `json:"recovery_score"`
	AvgHydration    int       `json:"avg_hydration"`
}

// dateLayout - формат ключа дня в хранилищах
const dateLayout = "2006-01-02"
