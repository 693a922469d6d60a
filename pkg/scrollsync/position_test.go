package scrollsync

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		count int
		want  Position
		ok    bool
	}{
		{"within range", Position{3, 10}, 10, Position{3, 10}, true},
		{"last item", Position{9, 0}, 10, Position{9, 0}, true},
		{"past the end", Position{12, 7}, 5, Position{4, 7}, true},
		{"single item", Position{40, 2}, 1, Position{0, 2}, true},
		{"offset kept", Position{20, 250}, 20, Position{19, 250}, true},
		{"no items", Position{12, 0}, 0, Position{}, false},
		{"negative count", Position{1, 0}, -3, Position{}, false},
		{"negative index", Position{-1, 5}, 10, Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clamp(tt.pos, tt.count)
			if ok != tt.ok {
				t.Fatalf("Clamp(%v, %d) ok = %v, want %v", tt.pos, tt.count, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Clamp(%v, %d) = %v, want %v", tt.pos, tt.count, got, tt.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Index: 5, Offset: 12}).String(); got != "(5,12)" {
		t.Errorf("String() = %q", got)
	}
}

func TestSlotEqual(t *testing.T) {
	absent := leaderSlot{}
	zero := leaderSlot{pos: Position{}, ok: true}

	if slotEqual(absent, zero) {
		t.Error("absent slot must differ from a published (0,0)")
	}
	if !slotEqual(zero, leaderSlot{ok: true}) {
		t.Error("identical slots must be equal")
	}
}
