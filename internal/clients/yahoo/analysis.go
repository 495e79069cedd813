package yahoo

import (
	"context"
	"time"

	"github.com/bobmcallan/yfin/internal/models"
)

// upgradesModule is the quoteSummary payload for analyst rating changes.
type upgradesModule struct {
	UpgradeDowngradeHistory struct {
		History []struct {
			EpochGradeDate int64  `json:"epochGradeDate"`
			Firm           string `json:"firm"`
			ToGrade        string `json:"toGrade"`
			FromGrade      string `json:"fromGrade"`
			Action         string `json:"action"`
		} `json:"history"`
	} `json:"upgradeDowngradeHistory"`
}

// GetUpgradeDowngrades retrieves analyst rating changes, most recent first
func (c *Client) GetUpgradeDowngrades(ctx context.Context, symbol string) ([]models.GradeChange, error) {
	var resp upgradesModule
	if err := c.quoteSummary(ctx, symbol, "upgradeDowngradeHistory", &resp); err != nil {
		return nil, err
	}

	changes := make([]models.GradeChange, 0, len(resp.UpgradeDowngradeHistory.History))
	for _, h := range resp.UpgradeDowngradeHistory.History {
		changes = append(changes, models.GradeChange{
			Date:      time.Unix(h.EpochGradeDate, 0).UTC(),
			Firm:      h.Firm,
			ToGrade:   h.ToGrade,
			FromGrade: h.FromGrade,
			Action:    h.Action,
		})
	}

	return changes, nil
}

// earningsModules is the quoteSummary payload for the earnings calendar.
type earningsModules struct {
	CalendarEvents struct {
		Earnings struct {
			EarningsDate []rawValue `json:"earningsDate"`
		} `json:"earnings"`
	} `json:"calendarEvents"`
	EarningsHistory struct {
		History []struct {
			Quarter         rawValue `json:"quarter"`
			EpsEstimate     rawValue `json:"epsEstimate"`
			EpsActual       rawValue `json:"epsActual"`
			SurprisePercent rawValue `json:"surprisePercent"`
		} `json:"history"`
	} `json:"earningsHistory"`
}

// GetEarnings retrieves the earnings calendar and reported history
func (c *Client) GetEarnings(ctx context.Context, symbol string) (*models.EarningsCalendar, error) {
	var resp earningsModules
	if err := c.quoteSummary(ctx, symbol, "calendarEvents,earningsHistory", &resp); err != nil {
		return nil, err
	}

	calendar := &models.EarningsCalendar{}

	if dates := resp.CalendarEvents.Earnings.EarningsDate; len(dates) > 0 {
		calendar.NextEarnings = dates[0].Time()
	}

	for _, h := range resp.EarningsHistory.History {
		quarter := h.Quarter.Time()
		if quarter == nil {
			continue
		}
		calendar.History = append(calendar.History, models.EarningsEvent{
			Date:            *quarter,
			EPSEstimate:     h.EpsEstimate.Float(),
			EPSReported:     h.EpsActual.Float(),
			SurprisePercent: h.SurprisePercent.Float(),
		})
	}

	return calendar, nil
}
