package json_types

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	valid := []struct {
		in   string
		want ClockTime
	}{
		{"00:00", 0},
		{"08:40", 520},
		{"23:59", 1439},
		{"24:00", 1440},
	}
	for _, c := range valid {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
		if got.String() != c.in {
			t.Errorf("String() = %q, want %q", got.String(), c.in)
		}
	}

	invalid := []string{"", "9", "9:5:0", "ab:cd", "25:00", "10:60", "-1:00"}
	for _, in := range invalid {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q) expected error", in)
		}
	}
}

func TestParseSlotRange(t *testing.T) {
	r, err := ParseSlotRange("09:40-10:30")
	if err != nil {
		t.Fatalf("ParseSlotRange error: %v", err)
	}
	if r.Start != 580 || r.End != 630 {
		t.Fatalf("unexpected range %v", r)
	}
	if r.String() != "09:40-10:30" {
		t.Errorf("String() = %q", r.String())
	}

	for _, in := range []string{"", "09:40", "09:40-", "9-10", "09:40-25:00"} {
		if _, err := ParseSlotRange(in); err == nil {
			t.Errorf("ParseSlotRange(%q) expected error", in)
		}
	}
}

func TestSlotRangeOverlaps(t *testing.T) {
	base := SlotRange{Start: 540, End: 600} // 09:00-10:00

	cases := []struct {
		name  string
		other SlotRange
		want  bool
	}{
		{"identical", SlotRange{Start: 540, End: 600}, true},
		{"contained", SlotRange{Start: 550, End: 560}, true},
		{"partial", SlotRange{Start: 570, End: 630}, true},
		{"touching end", SlotRange{Start: 600, End: 660}, false},
		{"touching start", SlotRange{Start: 480, End: 540}, false},
		{"zero duration inside", SlotRange{Start: 550, End: 550}, false},
	}
	for _, c := range cases {
		if got := base.Overlaps(c.other); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
		// Пересечение симметрично
		if got := c.other.Overlaps(base); got != c.want {
			t.Errorf("%s: reverse Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}
