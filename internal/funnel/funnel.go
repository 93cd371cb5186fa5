// Package funnel computes cumulative stage counts and stage-to-stage
// conversion rates over kanban-style pipeline boards.
package funnel

import (
	"math"
	"sort"
)

// ColumnKind is the closed set of board columns. Column identity is a tagged
// enumeration rather than a free-form string id.
type ColumnKind int

const (
	Rejection ColumnKind = iota
	InProgress
	Preparation
	Active
	Success
)

var columnKindIDs = map[ColumnKind]string{
	Rejection:   "rejection",
	InProgress:  "in_progress",
	Preparation: "preparation",
	Active:      "active",
	Success:     "success",
}

// ID returns the stable wire identifier for the column kind.
func (k ColumnKind) ID() string {
	return columnKindIDs[k]
}

// flowOrder is the fixed column search order for cumulative stage lookups.
// Stage sequences are authored in forward-funnel order within each column,
// so summing from the first name match onward across these columns yields
// "how many entities have reached at least this stage".
var flowOrder = [...]ColumnKind{InProgress, Active, Success}

// Stage is a named pipeline step holding the count of entities at that step.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Column is an ordered stage sequence under one board column.
type Column struct {
	Kind   ColumnKind `json:"-"`
	Name   string     `json:"name"`
	Stages []Stage    `json:"stages"`
}

// Count sums the column's stage counts.
func (c Column) Count() int {
	total := 0
	for _, s := range c.Stages {
		total += s.Count
	}
	return total
}

// Board is an ordered set of columns forming one pipeline.
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column returns the column of the given kind, if the board has one.
func (b Board) Column(kind ColumnKind) (Column, bool) {
	for _, c := range b.Columns {
		if c.Kind == kind {
			return c, true
		}
	}
	return Column{}, false
}

// TotalCount sums every stage count across all columns.
func (b Board) TotalCount() int {
	total := 0
	for _, c := range b.Columns {
		total += c.Count()
	}
	return total
}

// CumulativeStageCount returns how many entities have reached at least the
// named stage. Columns are searched in the fixed forward-funnel order; once
// the stage name matches, that stage and every later stage (within the
// column and all later flow columns) are summed. Unknown names yield 0.
func CumulativeStageCount(b Board, stageName string) int {
	count := 0
	found := false
	for _, kind := range flowOrder {
		column, ok := b.Column(kind)
		if !ok {
			continue
		}
		for _, stage := range column.Stages {
			if stage.Name == stageName {
				found = true
			}
			if found {
				count += stage.Count
			}
		}
	}
	return count
}

// Conversion returns the whole-percent ratio of the cumulative counts of two
// stages, rounded half up. A zero fromStage count yields 0 rather than a
// division fault. The result is deliberately left unclamped: inconsistent
// source data can push it past 100 and callers decide whether to cap it for
// display.
func Conversion(b Board, fromStage, toStage string) int {
	from := CumulativeStageCount(b, fromStage)
	if from == 0 {
		return 0
	}
	to := CumulativeStageCount(b, toStage)
	return int(math.Round(float64(to) / float64(from) * 100))
}

// ColumnShare is one column's load within a board.
type ColumnShare struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// ColumnShares returns per-column counts with their whole-percent share of
// the board total, largest first. Shares are 0 on an empty board.
func ColumnShares(b Board) []ColumnShare {
	total := b.TotalCount()
	shares := make([]ColumnShare, 0, len(b.Columns))
	for _, c := range b.Columns {
		share := ColumnShare{ID: c.Kind.ID(), Name: c.Name, Count: c.Count()}
		if total > 0 {
			share.Percent = int(math.Round(float64(share.Count) / float64(total) * 100))
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// AverageColumnLoad returns the board total divided across its columns,
// rounded. 0 for a board with no columns.
func AverageColumnLoad(b Board) int {
	if len(b.Columns) == 0 {
		return 0
	}
	return int(math.Round(float64(b.TotalCount()) / float64(len(b.Columns))))
}

// StageRow is a stage flattened out of its column for ranked display.
type StageRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	ColumnID string `json:"columnId"`
}

// TopStages flattens the board's stages and returns the n busiest, sorted by
// count descending. Fewer than n stages returns them all.
func TopStages(b Board, n int) []StageRow {
	rows := make([]StageRow, 0)
	for _, c := range b.Columns {
		for _, s := range c.Stages {
			rows = append(rows, StageRow{ID: s.ID, Name: s.Name, Count: s.Count, ColumnID: c.Kind.ID()})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
