// Package analytics holds the shared domain types of the partner-network
// dashboard and the deterministic synthetic snapshot generator behind it.
package analytics

import (
	"github.com/akorchagin/partnerpulse/internal/funnel"
	"github.com/akorchagin/partnerpulse/internal/plan"
)

// ActivityPoint is one bucket of the activity timeseries: a day for the
// week/month periods, a month for all time. Insertion order is
// chronological order.
type ActivityPoint struct {
	Date       string `json:"date"`
	Calls      int    `json:"calls"`
	Chats      int    `json:"chats"`
	Selections int    `json:"selections"`
}

// Total is the combined activity of the point.
func (p ActivityPoint) Total() int {
	return p.Calls + p.Chats + p.Selections
}

// LeadsPoint is one bucket of the leads timeseries.
type LeadsPoint struct {
	Date      string `json:"date"`
	Added     int    `json:"added"`
	Converted int    `json:"converted"`
}

// ActivityMarker is the three-tier engagement classification assigned by
// the data source and consumed as-is by the derivation engine.
type ActivityMarker string

const (
	MarkerGreen  ActivityMarker = "green"
	MarkerYellow ActivityMarker = "yellow"
	MarkerRed    ActivityMarker = "red"
)

// PartnerRow is one leaderboard line.
type PartnerRow struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	LeadsAdded         int            `json:"leadsAdded"`
	StageChangesCount  int            `json:"stageChangesCount"`
	CallClicks         int            `json:"callClicks"`
	ChatOpens          int            `json:"chatOpens"`
	SelectionsCreated  int            `json:"selectionsCreated"`
	CommissionUSD      int            `json:"commissionUsd"`
	IsOnline           bool           `json:"isOnline"`
	OnlineDaysLast7    int            `json:"onlineDaysLast7"`
	Level2Count        int            `json:"level2Count"`
	ActivityMarker     ActivityMarker `json:"activityMarker"`
	LastSeenMinutesAgo int            `json:"lastSeenMinutesAgo"`
}

// StaticKPI are the all-time accumulators shown in the summary cards.
type StaticKPI struct {
	TotalLeads      int `json:"totalLeads"`
	TotalDeals      int `json:"totalDeals"`
	Level1Referrals int `json:"level1Referrals"`
	TotalListings   int `json:"totalListings"`
}

// DynamicKPI are the per-period counters.
type DynamicKPI struct {
	AddedLeads           int `json:"addedLeads"`
	CallClicks           int `json:"callClicks"`
	ChatOpens            int `json:"chatOpens"`
	SelectionsCreated    int `json:"selectionsCreated"`
	Deals                int `json:"deals"`
	AddedListings        int `json:"addedListings"`
	AddedLevel1Referrals int `json:"addedLevel1Referrals"`
}

// Snapshot is the full analytics payload for one period, either
// network-wide or scoped to a single person.
type Snapshot struct {
	Person             *PartnerRow     `json:"person,omitempty"`
	Partners           []PartnerRow    `json:"partners"`
	Funnels            []funnel.Board  `json:"funnels"`
	LeadsTimeseries    []LeadsPoint    `json:"leadsTimeseries"`
	ActivityTimeseries []ActivityPoint `json:"activityTimeseries"`
	StaticKPI          StaticKPI       `json:"staticKpi"`
	DynamicKPI         DynamicKPI      `json:"dynamicKpi"`
	PeriodLabel        string          `json:"periodLabel"`
}

// SalesFunnel picks the sales board out of the snapshot, falling back to
// the first board when none carries the sales id.
func (s Snapshot) SalesFunnel() funnel.Board {
	for _, b := range s.Funnels {
		if b.ID == "sales" {
			return b
		}
	}
	if len(s.Funnels) > 0 {
		return s.Funnels[0]
	}
	return funnel.Board{}
}

// PlanFacts maps the period's dynamic KPI onto the plan tracker's fact set.
func (k DynamicKPI) PlanFacts() plan.Facts {
	return plan.Facts{
		AddedLeads: k.AddedLeads,
		Calls:      k.CallClicks,
		Chats:      k.ChatOpens,
		Selections: k.SelectionsCreated,
		Deals:      k.Deals,
	}
}
