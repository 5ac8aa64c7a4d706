package Models

import (
	"github.com/shopspring/decimal"
)

// BudgetHead is a cost-area allocation under a department. CostArea is the
// business key the requests reference; it is unique across departments.
type BudgetHead struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Department  string          `json:"department" gorm:"size:255;not null"`
	CostArea    string          `json:"cost_area" gorm:"size:255;uniqueIndex;not null"`
	TotalBudget decimal.Decimal `json:"total_budget" gorm:"type:decimal(18,2);not null"`
}

type BudgetHeadInput struct {
	Department  string          `json:"department" validate:"required"`
	CostArea    string          `json:"cost_area" validate:"required"`
	TotalBudget decimal.Decimal `json:"total_budget"`
}
