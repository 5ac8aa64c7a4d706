package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerRow is the budget position of one cost area.
type LedgerRow struct {
	BudgetHeadID     uint            `json:"budget_head_id"`
	Department       string          `json:"department"`
	CostArea         string          `json:"cost_area"`
	TotalBudget      decimal.Decimal `json:"total_budget"`
	UtilizedCost     decimal.Decimal `json:"utilized_cost"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	UtilizationPct   decimal.Decimal `json:"utilization_pct"`
}

type LedgerTotals struct {
	TotalBudget      decimal.Decimal `json:"total_budget"`
	UtilizedCost     decimal.Decimal `json:"utilized_cost"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

type BudgetLedger struct {
	Rows   []LedgerRow  `json:"rows"`
	Totals LedgerTotals `json:"totals"`
}

// Area returns the ledger row for a cost area, if one exists.
func (l *BudgetLedger) Area(costArea string) (LedgerRow, bool) {
	for _, row := range l.Rows {
		if row.CostArea == costArea {
			return row, true
		}
	}
	return LedgerRow{}, false
}

var hundred = decimal.NewFromInt(100)

// ComputeBudgetLedger recomputes the full budget position from the budget
// heads and requests. It is a pure projection: no running totals are kept
// anywhere, so the result can never drift from the stored requests.
// Requests pointing at a cost area without a budget head (possible after a
// fiscal-year clear) are excluded.
func ComputeBudgetLedger(db *gorm.DB) (*BudgetLedger, error) {
	var heads []BudgetHead
	if err := db.Order("department, cost_area").Find(&heads).Error; err != nil {
		return nil, storeFailure(err)
	}

	var requests []Request
	if err := db.Find(&requests).Error; err != nil {
		return nil, storeFailure(err)
	}

	utilized := make(map[string]decimal.Decimal, len(heads))
	for _, req := range requests {
		utilized[req.CostArea] = utilized[req.CostArea].Add(req.LandedTotalCost)
	}

	ledger := &BudgetLedger{Rows: make([]LedgerRow, 0, len(heads))}
	for _, head := range heads {
		spent := utilized[head.CostArea]
		row := LedgerRow{
			BudgetHeadID:     head.ID,
			Department:       head.Department,
			CostArea:         head.CostArea,
			TotalBudget:      head.TotalBudget,
			UtilizedCost:     spent,
			RemainingBalance: head.TotalBudget.Sub(spent),
		}
		if head.TotalBudget.IsPositive() {
			row.UtilizationPct = spent.Div(head.TotalBudget).Mul(hundred).Round(2)
		}
		ledger.Rows = append(ledger.Rows, row)

		ledger.Totals.TotalBudget = ledger.Totals.TotalBudget.Add(head.TotalBudget)
		ledger.Totals.UtilizedCost = ledger.Totals.UtilizedCost.Add(spent)
	}
	ledger.Totals.RemainingBalance = ledger.Totals.TotalBudget.Sub(ledger.Totals.UtilizedCost)

	return ledger, nil
}

// utilizedCostOfArea sums the landed cost of all requests attributed to one
// cost area. Used by the mutators inside their transactions.
func utilizedCostOfArea(db *gorm.DB, costArea string) (decimal.Decimal, error) {
	var requests []Request
	if err := db.Where("cost_area = ?", costArea).Find(&requests).Error; err != nil {
		return decimal.Zero, storeFailure(err)
	}
	total := decimal.Zero
	for _, req := range requests {
		total = total.Add(req.LandedTotalCost)
	}
	return total, nil
}
