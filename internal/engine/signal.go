package engine

import (
	"math"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

// channelState хранит сглаженные значения каналов между тиками.
// Округление выполняется только при сборке Reading.
type channelState struct {
	heartRate float64
	hrv       float64
	spo2      float64
	skinTemp  float64
	stress    float64
	muscleO2  float64
	respRate  float64
	vo2       float64
	lactate   float64
	cadence   float64
}

// channelParams задает параметры модели сигнала одного канала:
// коэффициент сглаживания к цели, амплитуду шума и допуск выхода за коридор
type channelParams struct {
	smoothing float64
	noise     float64
	slack     float64
}

// Инерционные каналы (температура, VO2, лактат) движутся к цели медленнее
var (
	heartRateParams = channelParams{smoothing: 0.3, noise: 2, slack: 5}
	hrvParams       = channelParams{smoothing: 0.3, noise: 3, slack: 5}
	spo2Params      = channelParams{smoothing: 0.3, noise: 0.3, slack: 0}
	skinTempParams  = channelParams{smoothing: 0.15, noise: 0.05, slack: 0.2}
	stressParams    = channelParams{smoothing: 0.3, noise: 3, slack: 5}
	muscleO2Params  = channelParams{smoothing: 0.3, noise: 2, slack: 5}
	respRateParams  = channelParams{smoothing: 0.3, noise: 1, slack: 2}
	vo2Params       = channelParams{smoothing: 0.12, noise: 1.5, slack: 3}
	lactateParams   = channelParams{smoothing: 0.09, noise: 0.2, slack: 1}
	cadenceParams   = channelParams{smoothing: 0.3, noise: 3, slack: 0}
)

// advanceChannels продвигает все каналы к коридорам состояния state
func (e *Engine) advanceChannels(state vitals.PhysiologicalState, now time.Time) {
	b := vitals.For(state)
	hour := now.Hour()
	c := &e.channels

	c.heartRate = e.advance(c.heartRate, b.HeartRate, heartRateCircadian(hour), heartRateParams)
	c.hrv = e.advance(c.hrv, b.HRV, hrvCircadian(hour), hrvParams)
	c.spo2 = e.advance(c.spo2, b.SpO2, 0, spo2Params)
	c.skinTemp = e.advance(c.skinTemp, b.SkinTemp, 0, skinTempParams)
	c.stress = e.advance(c.stress, b.Stress, stressCircadian(hour), stressParams)
	c.muscleO2 = e.advance(c.muscleO2, b.MuscleO2, 0, muscleO2Params)
	c.respRate = e.advance(c.respRate, b.RespRate, 0, respRateParams)
	c.vo2 = e.advance(c.vo2, b.VO2, 0, vo2Params)
	c.lactate = e.advance(c.lactate, b.Lactate, 0, lactateParams)
	c.cadence = e.advance(c.cadence, b.Cadence, 0, cadenceParams)
}

// advance делает один шаг канала: сглаживание к цели, шум, ограничение коридором
func (e *Engine) advance(prev float64, r vitals.Range, circadian float64, p channelParams) float64 {
	target := r.Mid() + circadian
	next := lerp(prev, target, p.smoothing) + e.gauss(p.noise)
	return clamp(next, r.Lo-p.slack, r.Hi+p.slack)
}

// gauss возвращает гауссов шум амплитуды amp (преобразование Бокса-Мюллера)
func (e *Engine) gauss(amp float64) float64 {
	u1 := 1 - e.rng.Float64() // (0, 1], ln(0) исключен
	u2 := e.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2) * amp
}

// heartRateCircadian возвращает суточную поправку пульса:
// минимум около 4 утра, максимум во второй половине дня
func heartRateCircadian(hour int) float64 {
	return 5 * math.Sin(float64(hour-4)*math.Pi/12)
}

// hrvCircadian: ночью вариабельность выше, днем слегка подавлена
func hrvCircadian(hour int) float64 {
	if hour >= 22 || hour <= 6 {
		return 8
	}
	return -3
}

// stressCircadian моделирует дневной пик стресса
func stressCircadian(hour int) float64 {
	return 8 * math.Sin(float64(hour-8)*math.Pi/10)
}

// fatigueFor выводит уровень мышечной усталости из SmO2.
// Выше порогов действует уровень состояния по умолчанию.
func fatigueFor(muscleO2 float64, fallback vitals.FatigueLevel) vitals.FatigueLevel {
	switch {
	case muscleO2 < 45:
		return vitals.FatigueHigh
	case muscleO2 < 60:
		return vitals.FatigueMedium
	default:
		return fallback
	}
}

func lerp(from, to, f float64) float64 {
	return from + (to-from)*f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
