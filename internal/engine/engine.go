package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

const (
	// DefaultInterval - период тика по умолчанию
	DefaultInterval = 3 * time.Second

	persistTimeout = 5 * time.Second
)

// Config задает параметры движка при создании
type Config struct {
	Interval     time.Duration       // период тика, <= 0 означает DefaultInterval
	Seed         int64               // seed генератора шума, 0 - от текущего времени
	Now          func() time.Time    // источник времени, nil - time.Now
	OnReading    func(Reading)       // вызывается после каждого тика
	OnBatteryLow func(level float64) // вызывается один раз при разряде ниже порога
}

// Engine - симуляционный движок браслета. Владеет состоянием каналов,
// аккумуляторами и расписанием тиков. Все операции потокобезопасны.
type Engine struct {
	mu sync.RWMutex

	cfg      Config
	sessions SessionLookup
	sink     ReadingSink

	rng *rand.Rand
	now func() time.Time

	channels       channelState
	battery        float64
	batteryAlerted bool
	hydration      float64
	trainingLoad   float64
	tickCount      int64

	// Память о наблюдаемой тренировочной сессии
	sessionAnchor   time.Time // started_at активной сессии, идентичность
	sessionObserved time.Time // момент первого тика, увидевшего сессию
	activityTicks   int64

	interval time.Duration
	running  bool
	forced   *vitals.PhysiologicalState

	lastReading Reading

	stopChan     chan struct{}
	doneChan     chan struct{}
	intervalChan chan time.Duration
}

// New создает движок с посеянными заводскими значениями каналов
func New(sessions SessionLookup, sink ReadingSink, cfg Config) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:          cfg,
		sessions:     sessions,
		sink:         sink,
		rng:          rand.New(rand.NewSource(seed)),
		now:          cfg.Now,
		interval:     cfg.Interval,
		intervalChan: make(chan time.Duration, 1),
	}
	e.reseed()
	return e
}

// reseed возвращает каналы и аккумуляторы к заводским значениям.
// Вызывается из New и Reset.
func (e *Engine) reseed() {
	e.channels = channelState{
		heartRate: vitals.SeedHeartRate,
		hrv:       vitals.SeedHRV,
		spo2:      vitals.SeedSpO2,
		skinTemp:  vitals.SeedSkinTemp,
		stress:    vitals.SeedStress,
		muscleO2:  vitals.SeedMuscleO2,
		respRate:  vitals.SeedRespRate,
		vo2:       vitals.SeedVO2,
		lactate:   vitals.SeedLactate,
		cadence:   vitals.SeedCadence,
	}
	e.battery = vitals.SeedBattery
	e.batteryAlerted = false
	e.hydration = vitals.SeedHydration
	e.trainingLoad = 0
	e.tickCount = 0
	e.sessionAnchor = time.Time{}
	e.sessionObserved = time.Time{}
	e.activityTicks = 0
	e.forced = nil

	// Снимок до первого тика, чтобы API не отдавал нули
	e.lastReading = e.snapshot(vitals.StateResting, e.now())
}

// Start запускает расписание тиков. Повторный вызов игнорируется.
// Первый тик выполняется сразу, не дожидаясь интервала.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		log.Printf("[ENGINE] Start ignored: already running")
		return
	}
	e.running = true
	e.stopChan = make(chan struct{})
	e.doneChan = make(chan struct{})
	interval := e.interval
	stop, done := e.stopChan, e.doneChan
	e.mu.Unlock()

	e.pushDeviceState(true)
	e.Tick()

	go e.run(interval, stop, done)
	log.Printf("[ENGINE] Started, interval=%v", interval)
}

// Stop останавливает расписание. Состояние каналов и аккумуляторов
// сохраняется, повторный Start продолжит с того же места.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		log.Printf("[ENGINE] Stop ignored: not running")
		return
	}
	e.running = false
	stop, done := e.stopChan, e.doneChan
	ticks := e.tickCount
	e.mu.Unlock()

	close(stop)
	<-done

	e.pushDeviceState(false)
	log.Printf("[ENGINE] Stopped after %d ticks", ticks)
}

// run - цикл расписания. Отдельные каналы stop/done на каждый запуск
// позволяют перезапускать движок без гонок со старым циклом.
func (e *Engine) run(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Tick()
		case d := <-e.intervalChan:
			ticker.Reset(d)
		case <-stop:
			return
		}
	}
}

// Tick выполняет один шаг симуляции: определяет состояние, продвигает
// каналы, обновляет аккумуляторы, собирает Reading и рассылает его.
// Сбой записи логируется и не прерывает работу.
func (e *Engine) Tick() {
	e.mu.Lock()

	now := e.now()

	var state vitals.PhysiologicalState
	if e.forced != nil {
		state = *e.forced
		e.forced = nil
	} else {
		state = e.resolveState(now)
	}

	e.advanceChannels(state, now)
	e.updateAccumulators(state)
	batteryLow := e.drainBattery()

	e.tickCount++
	reading := e.snapshot(state, now)
	e.lastReading = reading

	onReading := e.cfg.OnReading
	onBatteryLow := e.cfg.OnBatteryLow
	battery := e.battery
	e.mu.Unlock()

	e.persistReading(reading)

	if onReading != nil {
		onReading(reading)
	}
	if batteryLow && onBatteryLow != nil {
		onBatteryLow(battery)
	}
}

// snapshot собирает Reading из текущего состояния (под мьютексом)
func (e *Engine) snapshot(state vitals.PhysiologicalState, now time.Time) Reading {
	b := vitals.For(state)
	return Reading{
		Timestamp:     now,
		State:         state,
		HeartRate:     roundInt(e.channels.heartRate),
		HRV:           roundInt(e.channels.hrv),
		SpO2:          round1(e.channels.spo2),
		SkinTemp:      round1(e.channels.skinTemp),
		Stress:        roundInt(e.channels.stress),
		MuscleO2:      round1(e.channels.muscleO2),
		MuscleFatigue: fatigueFor(e.channels.muscleO2, b.Fatigue),
		RespRate:      roundInt(e.channels.respRate),
		VO2:           round1(e.channels.vo2),
		Lactate:       round1(e.channels.lactate),
		Cadence:       roundInt(e.channels.cadence),
		TrainingLoad:  roundInt(e.trainingLoad),
		Hydration:     roundInt(e.hydration),
		RecoveryMin:   recoveryMinutes(e.trainingLoad, e.channels.heartRate),
		Battery:       round2(e.battery),
	}
}

// persistReading отправляет снимок в хранилище, не блокируя тик
func (e *Engine) persistReading(reading Reading) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := e.sink.PersistReading(ctx, reading); err != nil {
			log.Printf("[WARN] Failed to persist reading: %v", err)
		}
	}()
}

// pushDeviceState отправляет состояние устройства в хранилище
func (e *Engine) pushDeviceState(connected bool) {
	e.mu.RLock()
	state := DeviceState{
		BatteryLevel: round2(e.battery),
		Connected:    connected,
		LastSync:     e.now(),
	}
	e.mu.RUnlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := e.sink.PersistDeviceState(ctx, state); err != nil {
			log.Printf("[WARN] Failed to persist device state: %v", err)
		}
	}()
}

// SetInterval меняет период тиков. Работающее расписание перестраивается
// без потери накопленного состояния.
func (e *Engine) SetInterval(d time.Duration) {
	if d <= 0 {
		log.Printf("[WARN] Ignoring non-positive tick interval: %v", d)
		return
	}

	e.mu.Lock()
	e.interval = d
	running := e.running
	e.mu.Unlock()

	if running {
		// Вытесняем непринятое значение, цикл увидит последнее
		select {
		case e.intervalChan <- d:
		default:
			select {
			case <-e.intervalChan:
			default:
			}
			e.intervalChan <- d
		}
	}
	log.Printf("[ENGINE] Tick interval set to %v", d)
}

// ForceState подменяет состояние следующего тика. Действует один раз,
// затем возобновляется обычное разрешение состояния.
func (e *Engine) ForceState(state vitals.PhysiologicalState) error {
	if !state.Valid() {
		return fmt.Errorf("unknown state: %s", state)
	}

	e.mu.Lock()
	e.forced = &state
	e.mu.Unlock()

	log.Printf("[ENGINE] State forced for next tick: %s", state)
	return nil
}

// ResetBattery возвращает заряд к 100 и заново взводит уведомление о разряде
func (e *Engine) ResetBattery() {
	e.mu.Lock()
	e.battery = vitals.SeedBattery
	e.batteryAlerted = false
	e.mu.Unlock()

	log.Printf("[ENGINE] Battery reset to %.0f%%", vitals.SeedBattery)
}

// Reset возвращает движок к заводским значениям. Работающий движок
// нужно сначала остановить, иначе вызов игнорируется.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		log.Printf("[WARN] Reset ignored: engine is running")
		return
	}
	e.reseed()
	log.Printf("[ENGINE] State reset to seed values")
}

// LastReading возвращает последний снимок. Безопасно вызывать с любой частотой.
func (e *Engine) LastReading() Reading {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastReading
}

// Running сообщает, запущено ли расписание тиков
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// CurrentState возвращает состояние последнего тика
func (e *Engine) CurrentState() vitals.PhysiologicalState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastReading.State
}

// Interval возвращает текущий период тиков
func (e *Engine) Interval() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.interval
}

// GetStats возвращает счетчики движка
func (e *Engine) GetStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Running:      e.running,
		State:        e.lastReading.State,
		TickCount:    e.tickCount,
		IntervalMs:   e.interval.Milliseconds(),
		Battery:      round2(e.battery),
		TrainingLoad: roundInt(e.trainingLoad),
		Hydration:    roundInt(e.hydration),
	}
}
