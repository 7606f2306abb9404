package vitals

import "testing"

func TestBaseline_AllStatesCovered(t *testing.T) {
	for _, state := range AllStates {
		b, ok := baselines[state]
		if !ok {
			t.Errorf("No baseline row for state %s", state)
			continue
		}

		ranges := map[string]Range{
			"heart_rate": b.HeartRate,
			"hrv":        b.HRV,
			"spo2":       b.SpO2,
			"skin_temp":  b.SkinTemp,
			"stress":     b.Stress,
			"muscle_o2":  b.MuscleO2,
			"resp_rate":  b.RespRate,
			"vo2":        b.VO2,
			"lactate":    b.Lactate,
			"cadence":    b.Cadence,
		}

		for name, r := range ranges {
			if r.Lo > r.Hi {
				t.Errorf("State %s channel %s: lo %.2f > hi %.2f", state, name, r.Lo, r.Hi)
			}
		}

		if b.Fatigue != FatigueLow && b.Fatigue != FatigueMedium && b.Fatigue != FatigueHigh {
			t.Errorf("State %s has invalid default fatigue: %q", state, b.Fatigue)
		}
	}
}

func TestBaseline_RestingMidpoints(t *testing.T) {
	// Середины коридоров RESTING совпадают с seed-значениями основных каналов
	b := For(StateResting)

	if mid := b.HeartRate.Mid(); mid != SeedHeartRate {
		t.Errorf("Resting HR midpoint = %.1f, expected %.1f", mid, SeedHeartRate)
	}
	if mid := b.HRV.Mid(); mid != SeedHRV {
		t.Errorf("Resting HRV midpoint = %.1f, expected %.1f", mid, SeedHRV)
	}
	if mid := b.SkinTemp.Mid(); mid != SeedSkinTemp {
		t.Errorf("Resting skin temp midpoint = %.2f, expected %.2f", mid, SeedSkinTemp)
	}
}

func TestBaseline_UnknownStateFallsBackToResting(t *testing.T) {
	b := For(PhysiologicalState("UNKNOWN"))
	resting := For(StateResting)

	if b.HeartRate != resting.HeartRate {
		t.Errorf("Unknown state should fall back to resting baseline, got HR range %+v", b.HeartRate)
	}
}

func TestActivityType_BaseState(t *testing.T) {
	cases := []struct {
		activity ActivityType
		expected PhysiologicalState
	}{
		{ActivityRunning, StateIntenseActivity},
		{ActivityStrength, StateIntenseActivity},
		{ActivityHIIT, StateIntenseActivity},
		{ActivityCycling, StateModerateActivity},
		{ActivitySwimming, StateModerateActivity},
		{ActivityWalking, StateLightActivity},
		{ActivityYoga, StateLightActivity},
		{ActivityStretching, StateLightActivity},
		{ActivityMeditation, StateResting},
		{ActivityType("rowing"), StateModerateActivity}, // неизвестный тип
	}

	for _, tc := range cases {
		if got := tc.activity.BaseState(); got != tc.expected {
			t.Errorf("BaseState(%s) = %s, expected %s", tc.activity, got, tc.expected)
		}
	}
}

func TestPhysiologicalState_IsActive(t *testing.T) {
	active := []PhysiologicalState{StateWarmup, StateLightActivity, StateModerateActivity, StateIntenseActivity}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("State %s should be active", s)
		}
	}

	inactive := []PhysiologicalState{StateResting, StateSleeping, StateRecovery, StateCooldown, StateStressed}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("State %s should not be active", s)
		}
	}
}

func TestActivityType_Valid(t *testing.T) {
	for _, a := range AllActivities {
		if !a.Valid() {
			t.Errorf("Activity %s should be valid", a)
		}
	}

	if ActivityType("skydiving").Valid() {
		t.Error("Unknown activity should not be valid")
	}
}
