package analytics

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/akorchagin/partnerpulse/internal/funnel"
	"github.com/akorchagin/partnerpulse/internal/period"
)

// rosterNames is the fixed partner roster. The first entry is the current
// user. Ids are derived from the names, so the roster is stable across
// restarts regardless of the configured seed.
var rosterNames = []string{
	"Анна Соколова",
	"Дмитрий Орлов",
	"Елена Васильева",
	"Игорь Мельников",
	"Мария Кузнецова",
	"Павел Громов",
	"Ольга Тихонова",
	"Сергей Лебедев",
	"Наталья Романова",
	"Андрей Климов",
	"Татьяна Белова",
	"Виктор Савельев",
	"Ксения Миронова",
	"Роман Зайцев",
}

type partnerIdentity struct {
	id   string
	name string
}

// Generator produces deterministic synthetic analytics snapshots. A given
// seed always yields the same network, person pages included, so a demo
// deployment is reproducible end to end.
type Generator struct {
	seed   int64
	now    func() time.Time
	roster []partnerIdentity
	byID   map[string]partnerIdentity
}

// NewGenerator builds a generator over the fixed roster. A nil clock means
// time.Now.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	g := &Generator{
		seed:   seed,
		now:    now,
		roster: make([]partnerIdentity, 0, len(rosterNames)),
		byID:   make(map[string]partnerIdentity, len(rosterNames)),
	}
	for _, name := range rosterNames {
		ident := partnerIdentity{
			id:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
			name: name,
		}
		g.roster = append(g.roster, ident)
		g.byID[ident.id] = ident
	}
	return g
}

// CurrentUserID returns the id of the roster's own-account partner.
func (g *Generator) CurrentUserID() string {
	return g.roster[0].id
}

// PartnerIDs returns every roster id in roster order.
func (g *Generator) PartnerIDs() []string {
	ids := make([]string, len(g.roster))
	for i, ident := range g.roster {
		ids[i] = ident.id
	}
	return ids
}

// rng derives an independent deterministic stream for one (person, period)
// scope. The empty person id is the network-wide scope.
func (g *Generator) rng(personID string, p period.Period) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", g.seed, personID, p)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// periodScale is the rough volume multiplier of a period relative to a week.
func periodScale(p period.Period) int {
	switch p {
	case period.Month:
		return 4
	case period.AllTime:
		return 48
	default:
		return 1
	}
}

// NetworkSnapshot returns the network-wide analytics payload for the period.
func (g *Generator) NetworkSnapshot(p period.Period) Snapshot {
	return g.snapshot("", p)
}

// PersonSnapshot returns the payload scoped to one partner. The second
// return is false for ids outside the roster; callers surface that as a
// distinct not-found state rather than an empty dashboard.
func (g *Generator) PersonSnapshot(id string, p period.Period) (Snapshot, bool) {
	ident, ok := g.byID[id]
	if !ok {
		return Snapshot{}, false
	}
	s := g.snapshot(ident.id, p)
	for i := range s.Partners {
		if s.Partners[i].ID == ident.id {
			row := s.Partners[i]
			s.Person = &row
			break
		}
	}
	return s, true
}

func (g *Generator) snapshot(personID string, p period.Period) Snapshot {
	r := g.rng(personID, p)
	scale := periodScale(p)

	leads := g.leadsTimeseries(r, p)
	activity := g.activityTimeseries(r, p)

	s := Snapshot{
		Partners:           g.partners(p),
		Funnels:            buildFunnels(r, scale),
		LeadsTimeseries:    leads,
		ActivityTimeseries: activity,
		PeriodLabel:        period.Label(p),
	}
	s.DynamicKPI = dynamicKPI(r, leads, activity)
	s.StaticKPI = StaticKPI{
		TotalLeads:      420 + r.Intn(260),
		TotalDeals:      34 + r.Intn(28),
		Level1Referrals: len(g.roster) - 1,
		TotalListings:   58 + r.Intn(40),
	}
	return s
}

// partners builds the leaderboard rows. Each row draws from its own
// (partner, period) stream, so the same rows appear on the network page
// and on every person page for the same period.
func (g *Generator) partners(p period.Period) []PartnerRow {
	scale := periodScale(p)
	rows := make([]PartnerRow, 0, len(g.roster))
	for _, ident := range g.roster {
		r := g.rng(ident.id, p)
		calls := r.Intn(14*scale + 1)
		chats := r.Intn(10*scale + 1)
		selections := r.Intn(6*scale + 1)
		online := r.Intn(3) == 0
		lastSeen := 0
		if !online {
			lastSeen = 1 + r.Intn(72*60)
		}
		rows = append(rows, PartnerRow{
			ID:                 ident.id,
			Name:               ident.name,
			LeadsAdded:         r.Intn(7*scale+1) + scale,
			StageChangesCount:  r.Intn(11*scale + 1),
			CallClicks:         calls,
			ChatOpens:          chats,
			SelectionsCreated:  selections,
			CommissionUSD:      (2 + r.Intn(38)) * 50 * scale,
			IsOnline:           online,
			OnlineDaysLast7:    r.Intn(8),
			Level2Count:        r.Intn(6),
			ActivityMarker:     markerFor(calls+chats+selections, scale),
			LastSeenMinutesAgo: lastSeen,
		})
	}
	return rows
}

// markerFor assigns the three-tier engagement marker from the period's
// total touches, normalized by the period's volume scale.
func markerFor(touches, scale int) ActivityMarker {
	switch perWeek := touches / scale; {
	case perWeek >= 18:
		return MarkerGreen
	case perWeek >= 7:
		return MarkerYellow
	default:
		return MarkerRed
	}
}

// buildFunnels produces the sales and broker pipeline boards. Stage counts
// shrink monotonically along the forward path so the cumulative stage math
// behaves like a real funnel.
func buildFunnels(r *rand.Rand, scale int) []funnel.Board {
	newLeads := (18 + r.Intn(14)) * scale
	presented := fraction(r, newLeads, 35, 60)
	showings := fraction(r, presented, 40, 70)
	deals := fraction(r, showings, 15, 40)
	rejected := fraction(r, newLeads, 10, 25)

	sales := funnel.Board{
		ID:   "sales",
		Name: "Воронка продаж",
		Columns: []funnel.Column{
			{
				Kind: funnel.Rejection,
				Name: "Отказ",
				Stages: []funnel.Stage{
					{ID: "rejected", Name: "Отказ", Count: rejected},
				},
			},
			{
				Kind: funnel.InProgress,
				Name: "В работе",
				Stages: []funnel.Stage{
					{ID: "new-lead", Name: "Новый лид", Count: newLeads},
					{ID: "presented", Name: "Презентовали компанию", Count: presented},
				},
			},
			{
				Kind: funnel.Active,
				Name: "Активные",
				Stages: []funnel.Stage{
					{ID: "showing", Name: "Показ", Count: showings},
				},
			},
			{
				Kind: funnel.Success,
				Name: "Успех",
				Stages: []funnel.Stage{
					{ID: "deal", Name: "Заключен договор", Count: deals},
				},
			},
		},
	}

	applicants := (6 + r.Intn(8)) * scale
	trained := fraction(r, applicants, 40, 70)
	certified := fraction(r, trained, 40, 75)
	working := fraction(r, certified, 50, 90)
	declined := fraction(r, applicants, 5, 20)

	broker := funnel.Board{
		ID:   "broker",
		Name: "Воронка брокеров",
		Columns: []funnel.Column{
			{
				Kind: funnel.Rejection,
				Name: "Отказ",
				Stages: []funnel.Stage{
					{ID: "declined", Name: "Отказался", Count: declined},
				},
			},
			{
				Kind: funnel.InProgress,
				Name: "В работе",
				Stages: []funnel.Stage{
					{ID: "application", Name: "Заполнил анкету", Count: applicants},
					{ID: "training", Name: "Прошел обучение", Count: trained},
				},
			},
			{
				Kind: funnel.Active,
				Name: "Активные",
				Stages: []funnel.Stage{
					{ID: "certified", Name: "Аттестован", Count: certified},
				},
			},
			{
				Kind: funnel.Success,
				Name: "Успех",
				Stages: []funnel.Stage{
					{ID: "working", Name: "Работает", Count: working},
				},
			},
		},
	}

	return []funnel.Board{sales, broker}
}

// fraction draws a value between minPct and maxPct percent of base.
func fraction(r *rand.Rand, base, minPct, maxPct int) int {
	if base <= 0 {
		return 0
	}
	pct := minPct + r.Intn(maxPct-minPct+1)
	return base * pct / 100
}

// activityTimeseries emits the period's activity buckets in chronological
// order: 7 daily points for a week, one per calendar day for a month, and
// 12 monthly points for all time.
func (g *Generator) activityTimeseries(r *rand.Rand, p period.Period) []ActivityPoint {
	dates, monthly := g.bucketDates(p)
	points := make([]ActivityPoint, len(dates))
	for i, d := range dates {
		point := ActivityPoint{
			Date:       d.Format("2006-01-02"),
			Calls:      r.Intn(13),
			Chats:      r.Intn(9),
			Selections: r.Intn(5),
		}
		if monthly {
			point.Calls *= 18
			point.Chats *= 18
			point.Selections *= 18
		}
		points[i] = point
	}
	return points
}

// leadsTimeseries emits the period's lead buckets; converted never exceeds
// added within a bucket.
func (g *Generator) leadsTimeseries(r *rand.Rand, p period.Period) []LeadsPoint {
	dates, monthly := g.bucketDates(p)
	points := make([]LeadsPoint, len(dates))
	for i, d := range dates {
		added := r.Intn(7)
		if monthly {
			added *= 20
		}
		converted := 0
		if added > 0 {
			converted = r.Intn(added + 1)
		}
		points[i] = LeadsPoint{
			Date:      d.Format("2006-01-02"),
			Added:     added,
			Converted: converted,
		}
	}
	return points
}

// bucketDates returns the bucket anchors of a period and whether each
// bucket spans a whole month.
func (g *Generator) bucketDates(p period.Period) ([]time.Time, bool) {
	r := period.Resolve(p, g.now())
	switch p {
	case period.AllTime:
		dates := make([]time.Time, 12)
		anchor := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, r.Start.Location())
		for i := 0; i < 12; i++ {
			dates[i] = anchor.AddDate(0, i-11, 0)
		}
		return dates, true
	default:
		days := r.Days()
		dates := make([]time.Time, days)
		for i := 0; i < days; i++ {
			dates[i] = r.Start.AddDate(0, 0, i)
		}
		return dates, false
	}
}

// dynamicKPI derives the per-period counters. The touch and lead counters
// are the timeseries sums, so every card on a page agrees with the charts
// beside it.
func dynamicKPI(r *rand.Rand, leads []LeadsPoint, activity []ActivityPoint) DynamicKPI {
	var k DynamicKPI
	for _, p := range leads {
		k.AddedLeads += p.Added
		k.Deals += p.Converted
	}
	for _, p := range activity {
		k.CallClicks += p.Calls
		k.ChatOpens += p.Chats
		k.SelectionsCreated += p.Selections
	}
	k.AddedListings = r.Intn(9)
	k.AddedLevel1Referrals = r.Intn(4)
	return k
}
