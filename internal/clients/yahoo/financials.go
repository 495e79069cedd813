package yahoo

import (
	"context"
	"fmt"
	"sort"

	"github.com/bobmcallan/yfin/internal/models"
)

// statementEntry is one reported period: endDate plus a flat set of line
// items, all in Yahoo's raw/fmt envelope. Decoding through rawValue keeps
// unknown and malformed lines as missing values instead of failures.
type statementEntry map[string]rawValue

// statementsModule covers the three statement history modules; only the
// requested one is populated per call.
type statementsModule struct {
	IncomeStatementHistory struct {
		Statements []statementEntry `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory struct {
		Statements []statementEntry `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory struct {
		Statements []statementEntry `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

// statementModuleNames maps statement types to quoteSummary module names.
var statementModuleNames = map[string]string{
	"income":   "incomeStatementHistory",
	"balance":  "balanceSheetHistory",
	"cashflow": "cashflowStatementHistory",
}

// GetFinancials retrieves a financial statement history.
// statementType is one of "income", "balance", "cashflow".
func (c *Client) GetFinancials(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error) {
	module, ok := statementModuleNames[statementType]
	if !ok {
		return nil, fmt.Errorf("unknown statement type: %s", statementType)
	}

	var resp statementsModule
	if err := c.quoteSummary(ctx, symbol, module, &resp); err != nil {
		return nil, err
	}

	var entries []statementEntry
	switch statementType {
	case "income":
		entries = resp.IncomeStatementHistory.Statements
	case "balance":
		entries = resp.BalanceSheetHistory.Statements
	case "cashflow":
		entries = resp.CashflowStatementHistory.Statements
	}

	statements := &models.FinancialStatements{
		Periods: make([]models.StatementPeriod, 0, len(entries)),
	}

	for _, entry := range entries {
		endDate, ok := entry["endDate"]
		if !ok || endDate.Fmt == "" {
			continue
		}

		period := models.StatementPeriod{EndDate: endDate.Fmt}

		names := make([]string, 0, len(entry))
		for name := range entry {
			if name == "endDate" || name == "maxAge" {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			period.Lines = append(period.Lines, models.StatementLine{
				Name:  name,
				Value: entry[name].Float(),
			})
		}

		statements.Periods = append(statements.Periods, period)
	}

	return statements, nil
}
