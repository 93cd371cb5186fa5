package plan

import (
	"math"
	"testing"
)

func TestDefaultTargets_ZeroActivityAccount(t *testing.T) {
	got := DefaultTargets(Facts{})

	want := Targets{
		Week:  Metrics{Leads: 15, Contacts: 45, Deals: 3},
		Month: Metrics{Leads: 60, Contacts: 180, Deals: 12},
	}
	if got != want {
		t.Errorf("DefaultTargets(zero) = %+v, want %+v", got, want)
	}
}

func TestDefaultTargets_ActiveAccount(t *testing.T) {
	facts := Facts{AddedLeads: 22, Calls: 30, Chats: 25, Selections: 10, Deals: 5}
	got := DefaultTargets(facts)

	if got.Week.Leads != 22 {
		t.Errorf("week leads = %d, want 22", got.Week.Leads)
	}
	if got.Week.Contacts != 65 {
		t.Errorf("week contacts = %d, want 65", got.Week.Contacts)
	}
	if got.Week.Deals != 5 {
		t.Errorf("week deals = %d, want 5", got.Week.Deals)
	}
	// Month is week×4 once above the floors.
	if got.Month.Leads != 88 || got.Month.Contacts != 260 || got.Month.Deals != 20 {
		t.Errorf("month = %+v, want {88 260 20}", got.Month)
	}
}

func TestMerge_EmptyOverrideReturnsDefaults(t *testing.T) {
	defaults := DefaultTargets(Facts{AddedLeads: 20, Deals: 4})

	if got := Merge(defaults, nil); got != defaults {
		t.Errorf("Merge(defaults, nil) = %+v, want defaults", got)
	}
	if got := Merge(defaults, &StoredTargets{}); got != defaults {
		t.Errorf("Merge(defaults, empty) = %+v, want defaults", got)
	}
}

func TestMerge_FieldByField(t *testing.T) {
	defaults := DefaultTargets(Facts{})
	leads := 25.0
	deals := -7.0
	stored := &StoredTargets{
		Week: StoredMetrics{Leads: &leads, Deals: &deals},
	}

	got := Merge(defaults, stored)

	if got.Week.Leads != 25 {
		t.Errorf("week leads = %d, want stored 25", got.Week.Leads)
	}
	if got.Week.Contacts != 45 {
		t.Errorf("week contacts = %d, want default 45", got.Week.Contacts)
	}
	if got.Week.Deals != 0 {
		t.Errorf("negative stored deals = %d, want normalized 0", got.Week.Deals)
	}
	if got.Month != defaults.Month {
		t.Errorf("month bucket = %+v, want untouched defaults", got.Month)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"plain", 12, 12},
		{"fractional rounds", 7.5, 8},
		{"negative clamps", -3, 0},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
		{"-Inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeValue(tt.in); got != tt.want {
				t.Errorf("NormalizeValue(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name         string
		target, fact int
		want         int
	}{
		{"zero target", 0, 99, 0},
		{"zero fact", 10, 0, 0},
		{"half", 10, 5, 50},
		{"rounding", 3, 1, 33},
		{"rounding up", 3, 2, 67},
		{"over-achievement unclamped", 10, 23, 230},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.target, tt.fact); got != tt.want {
				t.Errorf("Progress(%d, %d) = %d, want %d", tt.target, tt.fact, got, tt.want)
			}
		})
	}
}

func TestBarWidth(t *testing.T) {
	if got := BarWidth(230); got != 140 {
		t.Errorf("BarWidth(230) = %d, want 140", got)
	}
	if got := BarWidth(-5); got != 0 {
		t.Errorf("BarWidth(-5) = %d, want 0", got)
	}
	if got := BarWidth(95); got != 95 {
		t.Errorf("BarWidth(95) = %d, want 95", got)
	}
}

func TestRowsAndOverall(t *testing.T) {
	target := Metrics{Leads: 20, Contacts: 50, Deals: 4}
	facts := Facts{AddedLeads: 10, Calls: 20, Chats: 20, Selections: 10, Deals: 2}

	rows := Rows(target, facts)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Key != "leads" || rows[0].Percent != 50 {
		t.Errorf("leads row = %+v, want 50%%", rows[0])
	}
	if rows[1].Key != "contacts" || rows[1].Fact != 50 || rows[1].Percent != 100 {
		t.Errorf("contacts row = %+v, want fact 50 at 100%%", rows[1])
	}
	if rows[2].Key != "deals" || rows[2].Percent != 50 {
		t.Errorf("deals row = %+v, want 50%%", rows[2])
	}

	// round((50+100+50)/3) = 67
	if got := Overall(rows); got != 67 {
		t.Errorf("Overall = %d, want 67", got)
	}
	if got := Overall(nil); got != 0 {
		t.Errorf("Overall(nil) = %d, want 0", got)
	}
}

func TestBucketFor(t *testing.T) {
	if got := BucketFor("week"); got != BucketWeek {
		t.Errorf("BucketFor(week) = %s", got)
	}
	if got := BucketFor("month"); got != BucketMonth {
		t.Errorf("BucketFor(month) = %s", got)
	}
	if got := BucketFor("allTime"); got != BucketMonth {
		t.Errorf("BucketFor(allTime) = %s, want month bucket", got)
	}
}
