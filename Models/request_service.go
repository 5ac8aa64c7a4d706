package Models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (in *RequestInput) normalize() {
	in.MNNumber = strings.TrimSpace(in.MNNumber)
	in.CostArea = strings.TrimSpace(in.CostArea)
	in.Department = strings.TrimSpace(in.Department)
	in.Location = strings.TrimSpace(in.Location)
	in.SupplierVendor = strings.TrimSpace(in.SupplierVendor)
	in.Particulars = strings.TrimSpace(in.Particulars)
	in.Requester = strings.TrimSpace(in.Requester)
}

func (in *RequestInput) costInputs() CostInputs {
	return CostInputs{
		ForeignSpareCost:  in.ForeignSpareCost,
		FreightFCACharges: in.FreightFCACharges,
		LocalCostWoVatAit: in.LocalCostWoVatAit,
		VatAit:            in.VatAit,
	}
}

// lockBudgetHead reads the budget head of a cost area under FOR UPDATE so
// the budget check and the request write observe a stable balance. SQLite
// ignores the clause; its single writer gives the same guarantee.
func lockBudgetHead(tx *gorm.DB, costArea string) (*BudgetHead, error) {
	var head BudgetHead
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cost_area = ?", costArea).First(&head).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unknownCostArea(costArea)
		}
		return nil, storeFailure(err)
	}
	return &head, nil
}

// CreateRequest validates and commits a new MN submission. Checks run in
// order, first failure wins: mandatory fields, non-negative costs, landed
// cost > 0, duplicate MN number, budget head exists, remaining balance
// covers the landed cost. Duty and FX are snapshotted from the current
// configuration. The whole check-and-insert runs in one transaction.
func CreateRequest(db *gorm.DB, in RequestInput, actor string) (*Request, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := validateCostInputs(in.costInputs()); err != nil {
		return nil, err
	}
	if in.Category != CategoryRM && in.Category != CategoryCC {
		return nil, &OpError{Code: ErrMissingField, Field: "mn_category", Message: "mn_category must be R&M or C&C"}
	}

	issueDate, err := parseDate(in.IssueDate, "mn_issue_date")
	if err != nil {
		return nil, err
	}
	dateSentHO, err := parseDate(in.DateSentHO, "date_sent_ho")
	if err != nil {
		return nil, err
	}

	var created *Request
	err = db.Transaction(func(tx *gorm.DB) error {
		rates, err := GetConfigRates(tx)
		if err != nil {
			return err
		}
		fxRate, ok := rates.FXRate(in.Currency)
		if !ok {
			return &OpError{Code: ErrMissingField, Field: "currency", Message: fmt.Sprintf("unsupported currency %q", in.Currency)}
		}

		landed := ComputeLandedCost(in.costInputs(), rates.Duty, fxRate)
		if !landed.IsPositive() {
			return invalidAmount("landed total cost must be greater than 0")
		}

		var count int64
		if err := tx.Model(&Request{}).Where("mn_number = ?", in.MNNumber).Count(&count).Error; err != nil {
			return storeFailure(err)
		}
		if count > 0 {
			return duplicateKey(fmt.Sprintf("an MN request with number %q already exists", in.MNNumber))
		}

		head, err := lockBudgetHead(tx, in.CostArea)
		if err != nil {
			return err
		}
		utilized, err := utilizedCostOfArea(tx, head.CostArea)
		if err != nil {
			return err
		}
		remaining := head.TotalBudget.Sub(utilized)
		if landed.GreaterThan(remaining) {
			return &OpError{
				Code:    ErrBudgetExceeded,
				Field:   "cost_area",
				Message: fmt.Sprintf("budget exceeded: cost area %q only has %s BDT remaining", head.CostArea, remaining.StringFixed(2)),
			}
		}

		request := Request{
			MNNumber:          in.MNNumber,
			IssueDate:         issueDate,
			DateLogged:        time.Now(),
			Requester:         in.Requester,
			CostArea:          head.CostArea,
			Status:            StatusPending,
			Particulars:       in.Particulars,
			Category:          in.Category,
			Department:        in.Department,
			Location:          in.Location,
			SupplierVendor:    in.SupplierVendor,
			SupplierType:      in.SupplierType,
			Currency:          in.Currency,
			ForeignSpareCost:  in.ForeignSpareCost,
			FreightFCACharges: in.FreightFCACharges,
			CustomsDutyRate:   rates.Duty,
			LocalCostWoVatAit: in.LocalCostWoVatAit,
			VatAit:            in.VatAit,
			LandedTotalCost:   landed,
			DateSentHO:        dateSentHO,
			PlantRemarks:      in.PlantRemarks,
		}
		if err := tx.Create(&request).Error; err != nil {
			return storeFailure(err)
		}
		created = &request
		return LogEvent(tx, actor, "MN_SUBMIT",
			fmt.Sprintf("Submitted MN %s for cost area %s, landed cost %s BDT.", request.MNNumber, request.CostArea, landed.StringFixed(2)))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return created, nil
}

// UpdateRequest re-validates an edited MN. The budget check is delta based:
// staying in the same cost area frees the original landed cost before the
// new one is checked; moving to another area gets no credit from the old
// one. Duty and FX are re-snapshotted from the current configuration.
func UpdateRequest(db *gorm.DB, id uint, in RequestInput, actor string) (*Request, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := validateCostInputs(in.costInputs()); err != nil {
		return nil, err
	}

	issueDate, err := parseDate(in.IssueDate, "mn_issue_date")
	if err != nil {
		return nil, err
	}
	dateSentHO, err := parseDate(in.DateSentHO, "date_sent_ho")
	if err != nil {
		return nil, err
	}

	var updated *Request
	err = db.Transaction(func(tx *gorm.DB) error {
		var original Request
		if err := tx.First(&original, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("request %d not found", id))
			}
			return storeFailure(err)
		}

		rates, err := GetConfigRates(tx)
		if err != nil {
			return err
		}
		fxRate, ok := rates.FXRate(in.Currency)
		if !ok {
			return &OpError{Code: ErrMissingField, Field: "currency", Message: fmt.Sprintf("unsupported currency %q", in.Currency)}
		}

		landed := ComputeLandedCost(in.costInputs(), rates.Duty, fxRate)
		if !landed.IsPositive() {
			return invalidAmount("landed total cost must be greater than 0")
		}

		if in.MNNumber != original.MNNumber {
			var count int64
			if err := tx.Model(&Request{}).Where("mn_number = ? AND id <> ?", in.MNNumber, id).Count(&count).Error; err != nil {
				return storeFailure(err)
			}
			if count > 0 {
				return duplicateKey(fmt.Sprintf("an MN request with number %q already exists", in.MNNumber))
			}
		}

		head, err := lockBudgetHead(tx, in.CostArea)
		if err != nil {
			return err
		}
		utilized, err := utilizedCostOfArea(tx, head.CostArea)
		if err != nil {
			return err
		}
		remaining := head.TotalBudget.Sub(utilized)

		if in.CostArea == original.CostArea {
			// Undo the original consumption before checking the new cost.
			available := remaining.Add(original.LandedTotalCost)
			if landed.GreaterThan(available) {
				return &OpError{
					Code:    ErrBudgetExceeded,
					Field:   "cost_area",
					Message: fmt.Sprintf("budget exceeded: cost area %q can support an updated cost of at most %s BDT", head.CostArea, available.StringFixed(2)),
				}
			}
		} else if landed.GreaterThan(remaining) {
			return &OpError{
				Code:    ErrBudgetExceeded,
				Field:   "cost_area",
				Message: fmt.Sprintf("budget exceeded: cost area %q only has %s BDT remaining", head.CostArea, remaining.StringFixed(2)),
			}
		}

		changes := map[string]interface{}{
			"mn_number":             in.MNNumber,
			"mn_issue_date":         issueDate,
			"cost_area":             head.CostArea,
			"mn_particulars":        in.Particulars,
			"mn_category":           in.Category,
			"department":            in.Department,
			"location":              in.Location,
			"supplier_vendor":       in.SupplierVendor,
			"supplier_type":         in.SupplierType,
			"currency":              in.Currency,
			"foreign_spare_cost":    in.ForeignSpareCost,
			"freight_fca_charges":   in.FreightFCACharges,
			"customs_duty_rate":     rates.Duty,
			"local_cost_wo_vat_ait": in.LocalCostWoVatAit,
			"vat_ait":               in.VatAit,
			"landed_total_cost":     landed,
			"date_sent_ho":          dateSentHO,
			"plant_remarks":         in.PlantRemarks,
		}
		if err := tx.Model(&original).Updates(changes).Error; err != nil {
			return storeFailure(err)
		}

		if err := LogEvent(tx, actor, "MN_ADMIN_EDIT",
			fmt.Sprintf("Request %d (MN %s) edited. Old cost: %s, new cost: %s BDT.",
				id, in.MNNumber, original.LandedTotalCost.StringFixed(2), landed.StringFixed(2))); err != nil {
			return err
		}

		var reloaded Request
		if err := tx.First(&reloaded, id).Error; err != nil {
			return storeFailure(err)
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return updated, nil
}

// UpdateRequestStatus sets the workflow status of an MN. Any administrator
// may set any status; the enum gates the value only.
func UpdateRequestStatus(db *gorm.DB, id uint, status, actor string) (*Request, error) {
	valid := false
	for _, s := range RequestStatuses {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &OpError{Code: ErrMissingField, Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	var request Request
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("request %d not found", id))
			}
			return storeFailure(err)
		}
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "MN_STATUS_CHANGE",
			fmt.Sprintf("MN %s status changed to '%s'.", request.MNNumber, status))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	request.Status = status
	return &request, nil
}

// RequestFilter narrows the request listing.
type RequestFilter struct {
	CostArea     string
	Status       string
	SupplierType string
	Category     string
}

func ListRequests(db *gorm.DB, filter RequestFilter) ([]Request, error) {
	query := db.Model(&Request{}).Order("date_logged DESC, id DESC")
	if filter.CostArea != "" {
		query = query.Where("cost_area = ?", filter.CostArea)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SupplierType != "" {
		query = query.Where("supplier_type = ?", filter.SupplierType)
	}
	if filter.Category != "" {
		query = query.Where("mn_category = ?", filter.Category)
	}
	var requests []Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, storeFailure(err)
	}
	return requests, nil
}
