package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseVehicle)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseProgress)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseVehicle] <= 0 {
		t.Error("expected vehicle phase to be tracked")
	}
	if stats.PhaseAvg[PhaseProgress] <= 0 {
		t.Error("expected progress phase to be tracked")
	}
	if stats.PhaseAvg[PhaseCamera] != 0 {
		t.Errorf("camera phase never ran but averaged %v", stats.PhaseAvg[PhaseCamera])
	}
	if stats.MaxTick < stats.AvgTick {
		t.Errorf("max tick %v below average %v", stats.MaxTick, stats.AvgTick)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	// A slow tick falls out of the window after three fast ones
	pc.StartTick()
	pc.StartPhase(PhaseScene)
	time.Sleep(5 * time.Millisecond)
	pc.EndTick()
	if pc.Stats().PhaseAvg[PhaseScene] <= 0 {
		t.Fatal("expected the slow tick to be recorded")
	}

	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseInput)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhaseAvg[PhaseScene] != 0 {
		t.Errorf("scene phase %v still in the window", stats.PhaseAvg[PhaseScene])
	}
	if stats.MaxTick >= 5*time.Millisecond {
		t.Errorf("max tick %v still includes the evicted sample", stats.MaxTick)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCamera)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseTelemetry)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseTelemetry] <= stats.PhasePct[PhaseCamera] {
		t.Errorf("expected telemetry (%v%%) > camera (%v%%)",
			stats.PhasePct[PhaseTelemetry], stats.PhasePct[PhaseCamera])
	}
	if total := stats.PhasePct[PhaseTelemetry] + stats.PhasePct[PhaseCamera]; total > 100.0001 {
		t.Errorf("phase shares sum to %v%%", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTick != 0 || stats.MaxTick != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("one frame cannot give an FPS")
	}
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	fps := pc.Stats().FPS
	if fps <= 0 || fps > 1000.0/15 {
		t.Errorf("fps = %v, want a positive rate at or under ~66", fps)
	}
}

func TestPerfCollector_PipelinePhases(t *testing.T) {
	pc := NewPerfCollector(4)

	for i := 0; i < 3; i++ {
		pc.StartTick()
		for _, phase := range Phases() {
			pc.StartPhase(phase)
			time.Sleep(20 * time.Microsecond)
		}
		pc.EndTick()
	}

	stats := pc.Stats()
	for _, phase := range Phases() {
		if stats.PhaseAvg[phase] <= 0 {
			t.Errorf("phase %s not tracked", phase)
		}
	}
}

func TestPhases_PipelineOrder(t *testing.T) {
	want := []string{"input", "vehicle", "progress", "camera", "scene", "telemetry"}
	got := Phases()
	if len(got) != len(want) {
		t.Fatalf("got %d phases, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("phase %d = %q, want %q", i, got[i], want[i])
		}
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("out of range phase = %q", Phase(200))
	}
}
