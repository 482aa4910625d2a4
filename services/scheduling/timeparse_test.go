package scheduling

import (
	"testing"
	"time"
)

// A Wednesday afternoon, so weekday arithmetic has a fixed anchor.
var anchor = time.Date(2026, time.August, 26, 13, 0, 0, 0, time.UTC)

func TestParseTimeTextSpokenForm(t *testing.T) {
	cases := []struct {
		in       string
		wantDay  time.Weekday
		wantHour int
	}{
		{"Monday at 2 PM", time.Monday, 14},
		{"monday at 2pm", time.Monday, 14},
		{"Friday at 11 am", time.Friday, 11},
		{"saturday at 14", time.Saturday, 14},
		{"Sunday at 12 am", time.Sunday, 0},
	}
	for _, c := range cases {
		got, err := ParseTimeText(c.in, anchor)
		if err != nil {
			t.Errorf("ParseTimeText(%q): %v", c.in, err)
			continue
		}
		if got.Weekday() != c.wantDay || got.Hour() != c.wantHour {
			t.Errorf("ParseTimeText(%q) = %v, want %v %02d:00", c.in, got, c.wantDay, c.wantHour)
		}
		if !got.After(anchor) {
			t.Errorf("ParseTimeText(%q) = %v, must be after %v", c.in, got, anchor)
		}
	}
}

func TestParseTimeTextSameWeekdayMeansNextWeek(t *testing.T) {
	got, err := ParseTimeText("Wednesday at 2 PM", anchor)
	if err != nil {
		t.Fatal(err)
	}
	if want := anchor.AddDate(0, 0, 7); got.Day() != want.Day() {
		t.Fatalf("same-weekday request must land next week: got %v", got)
	}
}

func TestParseTimeTextISOForms(t *testing.T) {
	for _, in := range []string{
		"2026-09-01T10:30:00Z",
		"2026-09-01T10:30:00",
		"2026-09-01 10:30",
	} {
		got, err := ParseTimeText(in, anchor)
		if err != nil {
			t.Errorf("ParseTimeText(%q): %v", in, err)
			continue
		}
		if got.Hour() != 10 || got.Minute() != 30 {
			t.Errorf("ParseTimeText(%q) = %v, want 10:30", in, got)
		}
	}
}

func TestParseTimeTextRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "whenever", "Blursday at 2 PM", "Monday at noonish", "Monday at 25"} {
		if _, err := ParseTimeText(in, anchor); err == nil {
			t.Errorf("ParseTimeText(%q) should fail", in)
		}
	}
}

func TestNormalizeDoctor(t *testing.T) {
	cases := map[string]string{
		"Dr. Patel":   "dr._patel",
		"  Smith  ":   "smith",
		"<b>Smith</b>": "bsmith/b",
	}
	for in, want := range cases {
		if got := NormalizeDoctor(in); got != want {
			t.Errorf("NormalizeDoctor(%q) = %q, want %q", in, got, want)
		}
	}
}
