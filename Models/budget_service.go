package Models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertBudgetHead creates or replaces the allocation of a cost area,
// keyed by the area name. Lowering the budget under the area's current
// utilized cost is rejected so the ledger invariant survives the update.
func UpsertBudgetHead(db *gorm.DB, in BudgetHeadInput, actor string) (*BudgetHead, error) {
	in.Department = strings.TrimSpace(in.Department)
	in.CostArea = strings.TrimSpace(in.CostArea)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.TotalBudget.IsNegative() {
		return nil, invalidAmount("total_budget must not be negative")
	}

	var head BudgetHead
	err := db.Transaction(func(tx *gorm.DB) error {
		utilized, err := utilizedCostOfArea(tx, in.CostArea)
		if err != nil {
			return err
		}
		if in.TotalBudget.LessThan(utilized) {
			return &OpError{
				Code:    ErrBudgetBelowUtilization,
				Field:   "total_budget",
				Message: fmt.Sprintf("new budget %s BDT is lower than the currently utilized %s BDT for %q", in.TotalBudget.StringFixed(2), utilized.StringFixed(2), in.CostArea),
			}
		}

		head = BudgetHead{Department: in.Department, CostArea: in.CostArea, TotalBudget: in.TotalBudget}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cost_area"}},
			DoUpdates: clause.AssignmentColumns([]string{"department", "total_budget"}),
		}).Create(&head).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "BUDGET_UPDATE",
			fmt.Sprintf("Added/updated budget for %s to %s BDT.", in.CostArea, in.TotalBudget.StringFixed(2)))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return &head, nil
}

// UpdateBudgetHead edits a budget head by id. An unchanged area name only
// re-checks the below-utilization guard. A changed name is a rename:
// allowed only at zero utilization, and every request pointing at the old
// area is re-pointed in the same transaction so no reference goes stale.
func UpdateBudgetHead(db *gorm.DB, id uint, in BudgetHeadInput, actor string) (*BudgetHead, error) {
	in.Department = strings.TrimSpace(in.Department)
	in.CostArea = strings.TrimSpace(in.CostArea)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if !in.TotalBudget.IsPositive() {
		return nil, invalidAmount("total_budget must be greater than 0")
	}

	var head BudgetHead
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&head, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("budget head %d not found", id))
			}
			return storeFailure(err)
		}
		originalArea := head.CostArea

		utilized, err := utilizedCostOfArea(tx, originalArea)
		if err != nil {
			return err
		}

		if in.CostArea == originalArea {
			if in.TotalBudget.LessThan(utilized) {
				return &OpError{
					Code:    ErrBudgetBelowUtilization,
					Field:   "total_budget",
					Message: fmt.Sprintf("new budget %s BDT is lower than the currently utilized %s BDT", in.TotalBudget.StringFixed(2), utilized.StringFixed(2)),
				}
			}
			if err := tx.Model(&head).Updates(map[string]interface{}{
				"department":   in.Department,
				"total_budget": in.TotalBudget,
			}).Error; err != nil {
				return storeFailure(err)
			}
			return LogEvent(tx, actor, "BUDGET_ADMIN_EDIT",
				fmt.Sprintf("Budget head %d (%s) edited. New budget: %s BDT.", id, in.CostArea, in.TotalBudget.StringFixed(2)))
		}

		// Rename path.
		var count int64
		if err := tx.Model(&BudgetHead{}).Where("cost_area = ? AND id <> ?", in.CostArea, id).Count(&count).Error; err != nil {
			return storeFailure(err)
		}
		if count > 0 {
			return duplicateKey(fmt.Sprintf("cost area %q already exists on another budget head", in.CostArea))
		}
		if utilized.IsPositive() {
			return &OpError{
				Code:    ErrNonZeroUtilization,
				Field:   "cost_area",
				Message: fmt.Sprintf("cannot rename cost area %q: it has an active utilized cost of %s BDT", originalArea, utilized.StringFixed(2)),
			}
		}

		if err := tx.Model(&head).Updates(map[string]interface{}{
			"department":   in.Department,
			"cost_area":    in.CostArea,
			"total_budget": in.TotalBudget,
		}).Error; err != nil {
			return storeFailure(err)
		}
		if err := tx.Model(&Request{}).Where("cost_area = ?", originalArea).
			Updates(map[string]interface{}{"cost_area": in.CostArea, "department": in.Department}).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "BUDGET_AREA_RENAME",
			fmt.Sprintf("Renamed budget cost area %q to %q. New budget: %s BDT.", originalArea, in.CostArea, in.TotalBudget.StringFixed(2)))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	head.Department = in.Department
	head.CostArea = in.CostArea
	head.TotalBudget = in.TotalBudget
	return &head, nil
}

// ClearBudgetHeads deletes every budget head. Request history is left
// untouched: this is the fiscal-year reset, and the resulting orphaned
// cost-area references are an accepted state.
func ClearBudgetHeads(db *gorm.DB, actor string) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&BudgetHead{})
		if result.Error != nil {
			return storeFailure(result.Error)
		}
		deleted = result.RowsAffected
		return LogEvent(tx, actor, "ADMIN_ACTION", "Cleared all budget data.")
	})
	if err != nil {
		return 0, AsOpError(err)
	}
	return deleted, nil
}

// BudgetImportRow is one parsed spreadsheet row.
type BudgetImportRow struct {
	Department  string
	CostArea    string
	TotalBudget decimal.Decimal
}

// ImportBudgetRows upserts a batch of budget heads in one transaction,
// mirroring the spreadsheet import. Blank rows are skipped; the first
// invalid row aborts the whole batch.
func ImportBudgetRows(db *gorm.DB, rows []BudgetImportRow, actor string) (int, error) {
	imported := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			dept := strings.TrimSpace(row.Department)
			area := strings.TrimSpace(row.CostArea)
			if dept == "" && area == "" {
				continue
			}
			if area == "" {
				return missingField("cost_area")
			}
			if dept == "" {
				return missingField("department")
			}
			if row.TotalBudget.IsNegative() {
				return invalidAmount(fmt.Sprintf("total_budget for %q must not be negative", area))
			}
			utilized, err := utilizedCostOfArea(tx, area)
			if err != nil {
				return err
			}
			if row.TotalBudget.LessThan(utilized) {
				return &OpError{
					Code:    ErrBudgetBelowUtilization,
					Field:   "total_budget",
					Message: fmt.Sprintf("imported budget %s BDT for %q is lower than the currently utilized %s BDT", row.TotalBudget.StringFixed(2), area, utilized.StringFixed(2)),
				}
			}
			head := BudgetHead{Department: dept, CostArea: area, TotalBudget: row.TotalBudget}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cost_area"}},
				DoUpdates: clause.AssignmentColumns([]string{"department", "total_budget"}),
			}).Create(&head).Error; err != nil {
				return storeFailure(err)
			}
			imported++
		}
		return LogEvent(tx, actor, "BUDGET_IMPORT",
			fmt.Sprintf("Imported/updated %d budget heads via file upload.", imported))
	})
	if err != nil {
		return 0, AsOpError(err)
	}
	return imported, nil
}
