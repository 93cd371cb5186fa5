package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/akorchagin/partnerpulse/internal/funnel"
)

// Grade is the qualitative rating of the touch-to-deal conversion.
type Grade string

const (
	GradeStrong Grade = "Сильный"
	GradeMedium Grade = "Средний"
	GradeLow    Grade = "Низкий"
)

// Efficiency summarizes how a partner's direct actions translate into
// deals over one period.
type Efficiency struct {
	TotalTouches          int     `json:"totalTouches"`
	FunnelMoves           int     `json:"funnelMoves"`
	LeadToPresentation    int     `json:"leadToPresentation"`
	PresentationToShowing int     `json:"presentationToShowing"`
	ShowingToDeal         int     `json:"showingToDeal"`
	LeadToDeal            int     `json:"leadToDeal"`
	TouchToDeal           int     `json:"touchToDeal"`
	TouchesPerDeal        float64 `json:"touchesPerDeal"`
	Grade                 Grade   `json:"grade"`
}

// BuildEfficiency derives the efficiency summary from the period's dynamic
// counters and the sales funnel. Funnel moves count only forward steps:
// rejections and backward moves are excluded, which is why the estimate
// weights added leads above selections.
func BuildEfficiency(k DynamicKPI, sales funnel.Board) Efficiency {
	touches := k.CallClicks + k.ChatOpens + k.SelectionsCreated
	moves := int(math.Round(float64(k.AddedLeads)*1.6 + float64(k.SelectionsCreated)*0.5))
	if moves < 0 {
		moves = 0
	}
	e := Efficiency{
		TotalTouches:          touches,
		FunnelMoves:           moves,
		LeadToPresentation:    funnel.Conversion(sales, "Новый лид", "Презентовали компанию"),
		PresentationToShowing: funnel.Conversion(sales, "Презентовали компанию", "Показ"),
		ShowingToDeal:         funnel.Conversion(sales, "Показ", "Заключен договор"),
		LeadToDeal:            funnel.Conversion(sales, "Новый лид", "Заключен договор"),
	}
	if touches > 0 {
		e.TouchToDeal = int(math.Round(float64(k.Deals) / float64(touches) * 100))
	}
	if k.Deals > 0 {
		e.TouchesPerDeal = float64(touches) / float64(k.Deals)
	}
	switch {
	case e.TouchToDeal >= 12:
		e.Grade = GradeStrong
	case e.TouchToDeal >= 6:
		e.Grade = GradeMedium
	default:
		e.Grade = GradeLow
	}
	return e
}

// TouchesPerDealLabel renders the touches-per-deal ratio with one decimal
// and the Russian decimal comma, or "—" when no deal closed.
func (e Efficiency) TouchesPerDealLabel() string {
	if e.TouchesPerDeal == 0 {
		return "—"
	}
	return strings.ReplaceAll(fmt.Sprintf("%.1f", e.TouchesPerDeal), ".", ",")
}

// CompositionShare is one activity channel's portion of all touches.
type CompositionShare struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Composition breaks the period's touches down by channel. Shares are
// whole percents of the touch total; an idle period yields zero shares.
func Composition(k DynamicKPI) []CompositionShare {
	total := k.CallClicks + k.ChatOpens + k.SelectionsCreated
	share := func(count int) int {
		if total == 0 {
			return 0
		}
		return int(math.Round(float64(count) / float64(total) * 100))
	}
	return []CompositionShare{
		{Channel: "Звонки", Count: k.CallClicks, Percent: share(k.CallClicks)},
		{Channel: "Чаты", Count: k.ChatOpens, Percent: share(k.ChatOpens)},
		{Channel: "Подборки", Count: k.SelectionsCreated, Percent: share(k.SelectionsCreated)},
	}
}

// FormatLastSeen renders a partner's last-seen age. Online partners and
// sub-minute ages read as "только что".
func FormatLastSeen(minutes int) string {
	switch {
	case minutes <= 0:
		return "только что"
	case minutes < 60:
		return fmt.Sprintf("%d мин назад", minutes)
	default:
		return fmt.Sprintf("%d ч назад", minutes/60)
	}
}
