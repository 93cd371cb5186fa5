// Package leaderboard filters and orders the partner table.
package leaderboard

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/akorchagin/partnerpulse/internal/analytics"
)

// Filters narrow the partner collection. ActiveLast7 and InactiveLast7 are
// independent predicates; screens expose one or the other, never both, but
// nothing here forbids combining them (the combination matches nobody).
type Filters struct {
	Query         string
	OnlineOnly    bool
	ActiveLast7   bool
	InactiveLast7 bool
}

// Filter returns the subsequence of partners passing every enabled
// predicate. The query matches case-insensitively as a substring of the
// partner name; an empty (or all-whitespace) query matches everyone.
func Filter(partners []analytics.PartnerRow, f Filters) []analytics.PartnerRow {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]analytics.PartnerRow, 0, len(partners))
	for _, p := range partners {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.OnlineOnly && !p.IsOnline {
			continue
		}
		if f.ActiveLast7 && p.OnlineDaysLast7 == 0 {
			continue
		}
		if f.InactiveLast7 && p.OnlineDaysLast7 > 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Column is a sortable numeric leaderboard column.
type Column string

const (
	ColumnLeadsAdded        Column = "leadsAdded"
	ColumnStageChanges      Column = "stageChangesCount"
	ColumnCallClicks        Column = "callClicks"
	ColumnChatOpens         Column = "chatOpens"
	ColumnSelectionsCreated Column = "selectionsCreated"
	ColumnCommissionUSD     Column = "commissionUsd"
	ColumnLevel2Count       Column = "level2Count"
	ColumnOnlineDays        Column = "onlineDaysLast7"
)

// ParseColumn validates a column name from the HTTP boundary.
func ParseColumn(s string) (Column, bool) {
	switch Column(s) {
	case ColumnLeadsAdded, ColumnStageChanges, ColumnCallClicks, ColumnChatOpens,
		ColumnSelectionsCreated, ColumnCommissionUSD, ColumnLevel2Count, ColumnOnlineDays:
		return Column(s), true
	}
	return "", false
}

func columnValue(p analytics.PartnerRow, c Column) int {
	switch c {
	case ColumnStageChanges:
		return p.StageChangesCount
	case ColumnCallClicks:
		return p.CallClicks
	case ColumnChatOpens:
		return p.ChatOpens
	case ColumnSelectionsCreated:
		return p.SelectionsCreated
	case ColumnCommissionUSD:
		return p.CommissionUSD
	case ColumnLevel2Count:
		return p.Level2Count
	case ColumnOnlineDays:
		return p.OnlineDaysLast7
	default:
		return p.LeadsAdded
	}
}

// Direction orders the primary sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders partners by the chosen numeric column. Ties break by name
// ascending under Russian collation (case-insensitive) regardless of the
// requested direction, and fully equal entries keep their input order.
func Sort(partners []analytics.PartnerRow, column Column, dir Direction) []analytics.PartnerRow {
	out := make([]analytics.PartnerRow, len(partners))
	copy(out, partners)

	// Collators buffer internally and are not safe for concurrent use, so
	// each call gets its own.
	collator := collate.New(language.Russian, collate.Loose)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := columnValue(out[i], column), columnValue(out[j], column)
		if a != b {
			if dir == Asc {
				return a < b
			}
			return a > b
		}
		return collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// TopReferrals ranks referral rows by leads contributed, name-tie-broken
// the same way the leaderboard is, keeping at most n rows.
func TopReferrals(referrals []analytics.PartnerRow, n int) []analytics.PartnerRow {
	ranked := Sort(referrals, ColumnLeadsAdded, Desc)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
