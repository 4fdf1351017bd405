package game

import (
	"testing"
	"time"
)

func TestScheduler_FixedCadence(t *testing.T) {
	clock := NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(clock, 600*time.Millisecond, discard())

	var order []string
	fixed, variable := 0, 0
	s.Fixed = func(dt time.Duration) {
		fixed++
		order = append(order, "fixed")
		if dt != 600*time.Millisecond {
			t.Errorf("fixed dt = %v", dt)
		}
	}
	s.Variable = func(time.Duration) {
		variable++
		order = append(order, "variable")
	}

	s.Frame()
	for i := 0; i < 36; i++ {
		clock.Advance(17 * time.Millisecond)
		s.Frame()
	}
	if fixed != 1 {
		t.Errorf("fixed ticks = %d, want 1", fixed)
	}
	if variable != 37 {
		t.Errorf("variable frames = %d, want 37", variable)
	}
	for i, o := range order {
		if o == "fixed" && (i+1 >= len(order) || order[i+1] != "variable") {
			t.Error("fixed tick must run before the frame's variable callback")
		}
	}
}

func TestScheduler_CatchUpIsCapped(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock, 100*time.Millisecond, discard())
	s.Frame()

	clock.Advance(time.Second + 50*time.Millisecond)
	if n := s.Frame(); n != MaxCatchUp {
		t.Errorf("ticks = %d, want %d", n, MaxCatchUp)
	}
	clock.Advance(60 * time.Millisecond)
	if n := s.Frame(); n != 1 {
		t.Errorf("remainder should carry over: ticks = %d", n)
	}
	if s.Ticks() != MaxCatchUp+1 {
		t.Errorf("total ticks = %d", s.Ticks())
	}
}

func TestScheduler_DefaultPeriod(t *testing.T) {
	s := NewScheduler(RealClock{}, 0, nil)
	if s.Period != DefaultTickPeriod {
		t.Errorf("period = %v", s.Period)
	}
}
