package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wellband/bracelet/internal/vitals"
)

// TestLookup - скриптуемый источник сессий для тестов
type TestLookup struct {
	mu       sync.Mutex
	activity *ActivitySignal
	sleep    *SleepSignal
	err      error
}

func (l *TestLookup) ActiveActivitySession(ctx context.Context) (*ActivitySignal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	return l.activity, nil
}

func (l *TestLookup) ActiveSleepSession(ctx context.Context) (*SleepSignal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	return l.sleep, nil
}

func (l *TestLookup) SetActivity(a *ActivitySignal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.activity = a
}

func (l *TestLookup) SetSleep(s *SleepSignal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sleep = s
}

func (l *TestLookup) SetError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// TestSink собирает все записанные снимки
type TestSink struct {
	mu       sync.Mutex
	readings []Reading
	states   []DeviceState
	failing  bool
}

func (s *TestSink) PersistReading(ctx context.Context, r Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("sink unavailable")
	}
	s.readings = append(s.readings, r)
	return nil
}

func (s *TestSink) PersistDeviceState(ctx context.Context, st DeviceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("sink unavailable")
	}
	s.states = append(s.states, st)
	return nil
}

func (s *TestSink) GetReadings() []Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Reading, len(s.readings))
	copy(result, s.readings)
	return result
}

func (s *TestSink) GetStates() []DeviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]DeviceState, len(s.states))
	copy(result, s.states)
	return result
}

func (s *TestSink) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

// testClock - управляемое время для детерминированных тиков
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Полдень, чтобы суточные поправки были фиксированы
var testStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(lookup *TestLookup, sink *TestSink, clock *testClock) *Engine {
	return New(lookup, sink, Config{
		Interval: 3 * time.Second,
		Seed:     42,
		Now:      clock.Now,
	})
}

func TestEngine_ReadingAvailableBeforeStart(t *testing.T) {
	e := newTestEngine(&TestLookup{}, &TestSink{}, newTestClock(testStart))

	r := e.LastReading()
	if r.State != vitals.StateResting {
		t.Errorf("Initial state = %s, expected RESTING", r.State)
	}
	if r.HeartRate != 65 {
		t.Errorf("Initial HR = %d, expected seed 65", r.HeartRate)
	}
	if r.Battery != 100 {
		t.Errorf("Initial battery = %.2f, expected 100", r.Battery)
	}
	if r.Hydration != 95 {
		t.Errorf("Initial hydration = %d, expected 95", r.Hydration)
	}
}

func TestEngine_StartPerformsImmediateTick(t *testing.T) {
	sink := &TestSink{}
	e := New(&TestLookup{}, sink, Config{
		Interval: time.Hour, // расписание не успеет сработать само
		Seed:     42,
	})

	e.Start()
	defer e.Stop()

	if got := e.GetStats().TickCount; got != 1 {
		t.Errorf("Expected exactly 1 immediate tick, got %d", got)
	}

	// Даем время асинхронной записи
	time.Sleep(100 * time.Millisecond)

	if readings := sink.GetReadings(); len(readings) != 1 {
		t.Errorf("Expected 1 persisted reading, got %d", len(readings))
	}

	states := sink.GetStates()
	if len(states) == 0 {
		t.Fatal("Expected device state to be persisted on start")
	}
	if !states[0].Connected {
		t.Error("Device state on start should be connected")
	}
}

func TestEngine_StartIdempotent(t *testing.T) {
	e := New(&TestLookup{}, &TestSink{}, Config{Interval: time.Hour, Seed: 42})

	e.Start()
	e.Start()
	defer e.Stop()

	if got := e.GetStats().TickCount; got != 1 {
		t.Errorf("Second Start must be ignored, tick count = %d", got)
	}
	if !e.Running() {
		t.Error("Engine should be running")
	}
}

func TestEngine_StopIdempotent(t *testing.T) {
	e := New(&TestLookup{}, &TestSink{}, Config{Interval: time.Hour, Seed: 42})

	e.Start()
	e.Stop()
	e.Stop()

	if e.Running() {
		t.Error("Engine should be stopped")
	}
}

func TestEngine_RestartKeepsAccumulatedState(t *testing.T) {
	e := New(&TestLookup{}, &TestSink{}, Config{Interval: time.Hour, Seed: 42})

	e.Start() // тик 1
	e.Stop()
	e.Start() // тик 2
	e.Stop()

	if got := e.GetStats().TickCount; got != 2 {
		t.Errorf("State must survive restart, tick count = %d, expected 2", got)
	}

	// Заряд списан за оба тика
	battery := e.LastReading().Battery
	if battery >= 100 {
		t.Errorf("Battery should have drained across restarts, got %.2f", battery)
	}
}

func TestEngine_SetIntervalRearmsSchedule(t *testing.T) {
	e := New(&TestLookup{}, &TestSink{}, Config{Interval: time.Hour, Seed: 42})

	e.Start()
	defer e.Stop()

	e.SetInterval(20 * time.Millisecond)
	time.Sleep(250 * time.Millisecond)

	if got := e.GetStats().TickCount; got < 3 {
		t.Errorf("Expected rearmed schedule to produce ticks, got %d", got)
	}

	// Некорректный интервал игнорируется
	e.SetInterval(-1)
	if got := e.Interval(); got != 20*time.Millisecond {
		t.Errorf("Non-positive interval must be ignored, interval = %v", got)
	}
}

func TestEngine_ForceStateAppliesToSingleTick(t *testing.T) {
	clock := newTestClock(testStart)
	e := newTestEngine(&TestLookup{}, &TestSink{}, clock)

	if err := e.ForceState(vitals.StateStressed); err != nil {
		t.Fatalf("ForceState failed: %v", err)
	}

	e.Tick()
	if got := e.LastReading().State; got != vitals.StateStressed {
		t.Errorf("Forced tick state = %s, expected STRESSED", got)
	}

	clock.Advance(3 * time.Second)
	e.Tick()
	if got := e.LastReading().State; got != vitals.StateResting {
		t.Errorf("Resolution must resume after forced tick, got %s", got)
	}
}

func TestEngine_ForceStateRejectsUnknown(t *testing.T) {
	e := newTestEngine(&TestLookup{}, &TestSink{}, newTestClock(testStart))

	if err := e.ForceState(vitals.PhysiologicalState("PANIC")); err == nil {
		t.Error("Expected error for unknown state")
	}
}

func TestEngine_SinkFailureDoesNotStopTicks(t *testing.T) {
	sink := &TestSink{}
	sink.SetFailing(true)

	var mu sync.Mutex
	listenerCalls := 0

	e := New(&TestLookup{}, sink, Config{
		Interval: 20 * time.Millisecond,
		Seed:     42,
		OnReading: func(Reading) {
			mu.Lock()
			listenerCalls++
			mu.Unlock()
		},
	})

	e.Start()
	time.Sleep(200 * time.Millisecond)
	e.Stop()

	if got := e.GetStats().TickCount; got < 3 {
		t.Errorf("Ticks must continue despite sink failures, got %d", got)
	}

	mu.Lock()
	calls := listenerCalls
	mu.Unlock()
	if calls < 3 {
		t.Errorf("Listener must be invoked despite sink failures, got %d calls", calls)
	}
}

func TestEngine_BatteryLowFiresExactlyOnce(t *testing.T) {
	clock := newTestClock(testStart)

	var mu sync.Mutex
	alerts := []float64{}

	e := New(&TestLookup{}, &TestSink{}, Config{
		Interval: 3 * time.Second,
		Seed:     42,
		Now:      clock.Now,
		OnBatteryLow: func(level float64) {
			mu.Lock()
			alerts = append(alerts, level)
			mu.Unlock()
		},
	})

	// Подводим заряд к порогу
	e.mu.Lock()
	e.battery = 15.03
	e.mu.Unlock()

	for i := 0; i < 20; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(alerts) != 1 {
		t.Fatalf("Expected exactly 1 low battery alert, got %d", len(alerts))
	}
	if alerts[0] > 15.0 || alerts[0] < 14.9 {
		t.Errorf("Alert level = %.3f, expected just below threshold", alerts[0])
	}
}

func TestEngine_ResetBatteryRearmsAlert(t *testing.T) {
	clock := newTestClock(testStart)

	var mu sync.Mutex
	alerts := 0

	e := New(&TestLookup{}, &TestSink{}, Config{
		Interval: 3 * time.Second,
		Seed:     42,
		Now:      clock.Now,
		OnBatteryLow: func(float64) {
			mu.Lock()
			alerts++
			mu.Unlock()
		},
	})

	drainPastThreshold := func() {
		e.mu.Lock()
		e.battery = 15.02
		e.mu.Unlock()
		for i := 0; i < 10; i++ {
			e.Tick()
			clock.Advance(3 * time.Second)
		}
	}

	drainPastThreshold()
	e.ResetBattery()
	drainPastThreshold()

	mu.Lock()
	defer mu.Unlock()
	if alerts != 2 {
		t.Errorf("Expected alert to fire once per crossing (2 total), got %d", alerts)
	}
}

func TestEngine_BatteryMonotonicallyDrains(t *testing.T) {
	clock := newTestClock(testStart)
	e := newTestEngine(&TestLookup{}, &TestSink{}, clock)

	prev := e.LastReading().Battery
	for i := 0; i < 200; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)

		got := e.LastReading().Battery
		if got > prev {
			t.Fatalf("Battery increased from %.2f to %.2f at tick %d", prev, got, i)
		}
		prev = got
	}
}

func TestEngine_ResetOnlyWhenStopped(t *testing.T) {
	e := New(&TestLookup{}, &TestSink{}, Config{Interval: time.Hour, Seed: 42})

	e.Start()
	e.Reset() // игнорируется на ходу
	if got := e.GetStats().TickCount; got != 1 {
		t.Errorf("Reset while running must be ignored, tick count = %d", got)
	}

	e.Stop()
	e.Reset()

	stats := e.GetStats()
	if stats.TickCount != 0 {
		t.Errorf("Tick count after reset = %d, expected 0", stats.TickCount)
	}
	if stats.Battery != 100 {
		t.Errorf("Battery after reset = %.2f, expected 100", stats.Battery)
	}
}

// Полный проход тренировки: покой -> разминка -> интенсив -> заминка ->
// восстановление -> покой
func TestEngine_WorkoutScenario(t *testing.T) {
	clock := newTestClock(testStart)
	lookup := &TestLookup{}
	e := newTestEngine(lookup, &TestSink{}, clock)

	tick := func() vitals.PhysiologicalState {
		e.Tick()
		clock.Advance(3 * time.Second)
		return e.LastReading().State
	}

	// Покой
	for i := 0; i < 5; i++ {
		if got := tick(); got != vitals.StateResting {
			t.Fatalf("Expected RESTING before workout, got %s", got)
		}
	}
	restingHR := e.LastReading().HeartRate

	// Старт пробежки
	lookup.SetActivity(&ActivitySignal{Type: vitals.ActivityRunning, StartedAt: clock.Now()})

	if got := tick(); got != vitals.StateWarmup {
		t.Fatalf("Expected WARMUP at workout start, got %s", got)
	}

	// Спустя 3+ минуты разминка переходит в интенсив
	clock.Advance(3 * time.Minute)
	for i := 0; i < 20; i++ {
		if got := tick(); got != vitals.StateIntenseActivity {
			t.Fatalf("Expected INTENSE_ACTIVITY mid-workout, got %s", got)
		}
	}

	workout := e.LastReading()
	if workout.HeartRate <= restingHR+40 {
		t.Errorf("HR during intense run = %d, expected well above resting %d", workout.HeartRate, restingHR)
	}
	if workout.TrainingLoad == 0 {
		t.Error("Training load should accumulate during workout")
	}
	if workout.Cadence == 0 {
		t.Error("Cadence should be non-zero during a run")
	}

	// Конец тренировки: окно заминки
	lookup.SetActivity(nil)

	if got := tick(); got != vitals.StateCooldown {
		t.Fatalf("Expected COOLDOWN right after workout, got %s", got)
	}

	// Спустя 5+ минут после конца - восстановление, затем покой
	clock.Advance(6 * time.Minute)
	if got := tick(); got != vitals.StateRecovery {
		t.Fatalf("Expected RECOVERY after cooldown window, got %s", got)
	}
	if got := tick(); got != vitals.StateResting {
		t.Fatalf("Expected RESTING after recovery, got %s", got)
	}
}

// Каждый снимок обязан оставаться в коридоре своего состояния
func TestEngine_ReadingsStayWithinCorridors(t *testing.T) {
	clock := newTestClock(testStart)
	lookup := &TestLookup{}
	e := newTestEngine(lookup, &TestSink{}, clock)

	check := func(r Reading) {
		b := vitals.For(r.State)

		assertIn := func(name string, value float64, rng vitals.Range, slack float64) {
			if value < rng.Lo-slack-0.5 || value > rng.Hi+slack+0.5 {
				t.Errorf("State %s channel %s = %.2f outside [%.2f, %.2f]",
					r.State, name, value, rng.Lo-slack, rng.Hi+slack)
			}
		}

		assertIn("heart_rate", float64(r.HeartRate), b.HeartRate, heartRateParams.slack)
		assertIn("hrv", float64(r.HRV), b.HRV, hrvParams.slack)
		assertIn("spo2", r.SpO2, b.SpO2, spo2Params.slack)
		assertIn("skin_temp", r.SkinTemp, b.SkinTemp, skinTempParams.slack)
		assertIn("stress", float64(r.Stress), b.Stress, stressParams.slack)
		assertIn("muscle_o2", r.MuscleO2, b.MuscleO2, muscleO2Params.slack)
		assertIn("resp_rate", float64(r.RespRate), b.RespRate, respRateParams.slack)
		assertIn("vo2", r.VO2, b.VO2, vo2Params.slack)
		assertIn("lactate", r.Lactate, b.Lactate, lactateParams.slack)
		assertIn("cadence", float64(r.Cadence), b.Cadence, cadenceParams.slack)

		if r.Battery < 0 || r.Battery > 100 {
			t.Errorf("Battery %.2f outside [0, 100]", r.Battery)
		}
		if r.Hydration < 0 || r.Hydration > 100 {
			t.Errorf("Hydration %d outside [0, 100]", r.Hydration)
		}
		if r.TrainingLoad < 0 || r.TrainingLoad > 100 {
			t.Errorf("Training load %d outside [0, 100]", r.TrainingLoad)
		}
	}

	// Покой
	for i := 0; i < 100; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)
		check(e.LastReading())
	}

	// Тренировка (велосипед - умеренная нагрузка)
	lookup.SetActivity(&ActivitySignal{Type: vitals.ActivityCycling, StartedAt: clock.Now().Add(-10 * time.Minute)})
	for i := 0; i < 100; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)
		check(e.LastReading())
	}

	// Сон
	lookup.SetActivity(nil)
	clock.Advance(10 * time.Minute)
	e.Tick() // восстановление после тренировки
	clock.Advance(3 * time.Second)
	lookup.SetSleep(&SleepSignal{StartedAt: clock.Now()})
	for i := 0; i < 100; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)
		check(e.LastReading())
	}
}

// Сглаживание: на покое средний шаг пульса между тиками мал
func TestEngine_SmoothnessAtRest(t *testing.T) {
	clock := newTestClock(testStart)
	e := newTestEngine(&TestLookup{}, &TestSink{}, clock)

	var totalDelta float64
	prev := e.LastReading().HeartRate

	const ticks = 200
	for i := 0; i < ticks; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)

		got := e.LastReading().HeartRate
		delta := got - prev
		if delta < 0 {
			delta = -delta
		}
		totalDelta += float64(delta)
		prev = got
	}

	if mean := totalDelta / ticks; mean > 6 {
		t.Errorf("Mean per-tick HR delta at rest = %.2f, expected smooth signal", mean)
	}
}

func TestEngine_LookupFailureDegradesGracefully(t *testing.T) {
	clock := newTestClock(testStart)
	lookup := &TestLookup{}
	e := newTestEngine(lookup, &TestSink{}, clock)

	lookup.SetError(errors.New("store unavailable"))

	for i := 0; i < 10; i++ {
		e.Tick()
		clock.Advance(3 * time.Second)

		if got := e.LastReading().State; got != vitals.StateResting {
			t.Fatalf("Lookup failure must degrade to RESTING, got %s", got)
		}
	}

	if got := e.GetStats().TickCount; got != 10 {
		t.Errorf("All ticks must complete despite lookup failures, got %d", got)
	}
}
