package pixelcafe

import "testing"

func TestInjectClickConsumesTwoTicks(t *testing.T) {
	r, m := newTestRouter(testInputConfig(), StyleCrossfade)
	r.InjectClick(8, 8)
	if r.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", r.Pending())
	}

	if !r.ProcessInjected() {
		t.Fatal("first ProcessInjected should consume the press")
	}
	if m.State() != StateOutside {
		t.Fatalf("press alone changed state to %v", m.State())
	}
	if !r.ProcessInjected() {
		t.Fatal("second ProcessInjected should consume the release")
	}
	if m.State() != StateFading {
		t.Errorf("State = %v, want fading", m.State())
	}
	if r.ProcessInjected() {
		t.Error("empty queue should report false")
	}
}

func TestInjectOrder(t *testing.T) {
	r, _ := newTestRouter(testInputConfig(), StyleCrossfade)
	r.InjectMove(4, 4)
	r.InjectMove(40, 44)
	r.ProcessInjected()
	if got := r.Logical(); got != (Point{1, 1}) {
		t.Errorf("Logical = %+v, want {1 1}", got)
	}
	r.ProcessInjected()
	if got := r.Logical(); got != (Point{10, 11}) {
		t.Errorf("Logical = %+v, want {10 11}", got)
	}
}

func TestInjectKey(t *testing.T) {
	r, m := newTestRouter(testInputConfig(), StyleCrossfade)
	m.Force(StateInside)
	r.InjectKey(KeyEnter)
	r.InjectKey(KeyEscape)
	r.ProcessInjected()
	if m.State() != StateFadingToFocused {
		t.Fatalf("State = %v, want fading_to_focused", m.State())
	}
	r.ProcessInjected()
	if m.State() != StateInside {
		t.Errorf("State = %v, want inside", m.State())
	}
}

func TestInjectPressRelease(t *testing.T) {
	r, m := newTestRouter(testInputConfig(), StyleCrossfade)
	r.InjectPress(0, 0)
	r.InjectRelease(400, 300)
	r.ProcessInjected()
	r.ProcessInjected()
	if got := r.Logical(); got != (Point{100, 75}) {
		t.Errorf("Logical = %+v, want release position {100 75}", got)
	}
	if m.State() != StateFading {
		t.Errorf("State = %v, want fading", m.State())
	}
}
