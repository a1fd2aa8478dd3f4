package dashboard

import "testing"

func TestSwipe_ThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		start     int
		end       int
		want      int
	}{
		{"exactly threshold stays", 50, 200, 150, 0},
		{"one past threshold moves", 50, 200, 149, 1},
		{"dial threshold exact", 30, 100, 70, 0},
		{"dial threshold past", 30, 100, 69, 1},
		{"rightward drag on first panel", 50, 100, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwipe(tt.threshold)
			s.Press(tt.start)
			s.Move((tt.start + tt.end) / 2)
			s.Release(tt.end)
			if s.Index() != tt.want {
				t.Errorf("Index() = %d, want %d", s.Index(), tt.want)
			}
		})
	}
}

func TestSwipe_MovesOneStepWithinBounds(t *testing.T) {
	s := NewSwipe(50)

	s.Press(1000)
	if !s.Release(0) {
		t.Fatal("expected long left drag to switch panels")
	}
	if s.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", s.Index())
	}

	s.Press(1000)
	if s.Release(0) {
		t.Error("drag past the last panel should not switch")
	}

	s.Press(0)
	s.Release(51)
	if s.Index() != 0 {
		t.Errorf("Index() = %d after right drag, want 0", s.Index())
	}
}

func TestSwipe_LeaveUsesLastPosition(t *testing.T) {
	s := NewSwipe(30)
	s.Press(100)
	s.Move(60)
	if !s.Leave() {
		t.Fatal("expected leave after a 40px drag to switch")
	}
	if s.Dragging() {
		t.Error("drag should end on leave")
	}
}

func TestSwipe_ReleaseWithoutPress(t *testing.T) {
	s := NewSwipe(50)
	s.Move(0)
	if s.Release(500) || s.Leave() {
		t.Error("release without a press must not switch")
	}
}

func TestSwipe_Jump(t *testing.T) {
	s := NewSwipe(50)
	if !s.Jump(1) || s.Index() != 1 {
		t.Errorf("Jump(1) did not activate panel 1")
	}
	if s.Jump(1) {
		t.Error("Jump to the active panel should report no change")
	}
	if s.Jump(2) || s.Jump(-1) {
		t.Error("out of range jump should be ignored")
	}
	if s.Index() != 1 {
		t.Errorf("Index() = %d, want 1", s.Index())
	}
}
