// Package plan tracks personal targets (plan) against realized KPI values
// (fact) for the week and month buckets, with optional persisted overrides.
package plan

import "math"

// Bucket selects which target set applies.
type Bucket string

const (
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// BucketFor maps a period selector to its plan bucket: week stays weekly,
// month and all-time both read the monthly plan.
func BucketFor(periodValue string) Bucket {
	if periodValue == "month" || periodValue == "allTime" {
		return BucketMonth
	}
	return BucketWeek
}

// Metrics holds the three planned values for one bucket.
type Metrics struct {
	Leads    int `json:"leads"`
	Contacts int `json:"contacts"`
	Deals    int `json:"deals"`
}

// Targets is the full per-bucket target set.
type Targets struct {
	Week  Metrics `json:"week"`
	Month Metrics `json:"month"`
}

// Metrics returns the target set for a bucket.
func (t Targets) Metrics(b Bucket) Metrics {
	if b == BucketMonth {
		return t.Month
	}
	return t.Week
}

// Facts are the realized KPI values the targets are compared against.
type Facts struct {
	AddedLeads int
	Calls      int
	Chats      int
	Selections int
	Deals      int
}

// Contacts is the combined touch count across all three channels.
func (f Facts) Contacts() int {
	return f.Calls + f.Chats + f.Selections
}

// Weekly floors keep denominators sane even for a brand-new account with
// zero activity; the monthly plan is four weeks with its own floors.
const (
	weekLeadsFloor    = 15
	weekContactsFloor = 45
	weekDealsFloor    = 3

	monthLeadsFloor    = 60
	monthContactsFloor = 180
	monthDealsFloor    = 12
)

// DefaultTargets derives a target set from current facts.
func DefaultTargets(f Facts) Targets {
	week := Metrics{
		Leads:    max(f.AddedLeads, weekLeadsFloor),
		Contacts: max(f.Contacts(), weekContactsFloor),
		Deals:    max(f.Deals, weekDealsFloor),
	}
	return Targets{
		Week: week,
		Month: Metrics{
			Leads:    max(week.Leads*4, monthLeadsFloor),
			Contacts: max(week.Contacts*4, monthContactsFloor),
			Deals:    max(week.Deals*4, monthDealsFloor),
		},
	}
}

// StoredMetrics is one bucket of a persisted override. Absent fields fall
// back to the computed default per field.
type StoredMetrics struct {
	Leads    *float64 `json:"leads,omitempty"`
	Contacts *float64 `json:"contacts,omitempty"`
	Deals    *float64 `json:"deals,omitempty"`
}

// StoredTargets is the persisted override record, shape
// {week:{leads,contacts,deals},month:{...}} keyed under the plan storage key.
type StoredTargets struct {
	Week  StoredMetrics `json:"week"`
	Month StoredMetrics `json:"month"`
}

// NormalizeValue coerces a stored plan value into a non-negative integer.
// Non-finite input normalizes to 0.
func NormalizeValue(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}

// Merge applies a persisted override on top of computed defaults, per bucket
// and per metric. A nil override returns the defaults unchanged.
func Merge(defaults Targets, stored *StoredTargets) Targets {
	if stored == nil {
		return defaults
	}
	return Targets{
		Week:  mergeMetrics(defaults.Week, stored.Week),
		Month: mergeMetrics(defaults.Month, stored.Month),
	}
}

func mergeMetrics(def Metrics, stored StoredMetrics) Metrics {
	return Metrics{
		Leads:    pick(stored.Leads, def.Leads),
		Contacts: pick(stored.Contacts, def.Contacts),
		Deals:    pick(stored.Deals, def.Deals),
	}
}

func pick(stored *float64, def int) int {
	if stored == nil {
		return def
	}
	return NormalizeValue(*stored)
}

// Normalize clamps an edited target set into valid range before it is
// committed or compared.
func Normalize(t Targets) Targets {
	norm := func(m Metrics) Metrics {
		return Metrics{
			Leads:    NormalizeValue(float64(m.Leads)),
			Contacts: NormalizeValue(float64(m.Contacts)),
			Deals:    NormalizeValue(float64(m.Deals)),
		}
	}
	return Targets{Week: norm(t.Week), Month: norm(t.Month)}
}

// Progress is the whole-percent completion of a target. Zero or negative
// targets yield 0; over-achievement is not clamped, callers cap for display.
func Progress(target, fact int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(fact) / float64(target) * 100))
}

// BarWidth caps a progress percent to the [0,140] range used for
// progress-bar geometry. The raw percent itself stays unclamped.
func BarWidth(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 140 {
		return 140
	}
	return percent
}

// Row is one plan-vs-fact line of the tracker view.
type Row struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Plan     int    `json:"plan"`
	Fact     int    `json:"fact"`
	Percent  int    `json:"percent"`
	BarWidth int    `json:"barWidth"`
}

var metricLabels = []struct{ key, label string }{
	{"leads", "Новые лиды"},
	{"contacts", "Активности"},
	{"deals", "Сделки"},
}

// Rows builds the plan-vs-fact rows for one bucket's targets.
func Rows(target Metrics, facts Facts) []Row {
	values := map[string]struct{ plan, fact int }{
		"leads":    {target.Leads, facts.AddedLeads},
		"contacts": {target.Contacts, facts.Contacts()},
		"deals":    {target.Deals, facts.Deals},
	}
	rows := make([]Row, 0, len(metricLabels))
	for _, m := range metricLabels {
		v := values[m.key]
		percent := Progress(v.plan, v.fact)
		rows = append(rows, Row{
			Key:      m.key,
			Label:    m.label,
			Plan:     v.plan,
			Fact:     v.fact,
			Percent:  percent,
			BarWidth: BarWidth(percent),
		})
	}
	return rows
}

// Overall is the rounded arithmetic mean of the per-metric percentages.
func Overall(rows []Row) int {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rows {
		sum += r.Percent
	}
	return int(math.Round(float64(sum) / float64(len(rows))))
}
