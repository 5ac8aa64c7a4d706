package Models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request statuses. Transitions are set by administrators and are not
// enforced as a strict state machine; the list gates the input only.
const (
	StatusPending         = "Pending"
	StatusApprovedSRPM    = "Approved by SRPM"
	StatusApprovedAD      = "Approved by AD"
	StatusFinanceApproved = "Finance Approved"
	StatusRejected        = "Rejected"
	StatusPOIssued        = "PO Issued"
	StatusCompleted       = "Completed"
)

var RequestStatuses = []string{
	StatusPending,
	StatusApprovedSRPM,
	StatusApprovedAD,
	StatusFinanceApproved,
	StatusRejected,
	StatusPOIssued,
	StatusCompleted,
}

const (
	CategoryRM = "R&M (Repair & Maintenance)"
	CategoryCC = "C&C (Chemicals & Consumables)"

	SupplierLocal   = "Local"
	SupplierForeign = "Foreign"
)

// Request is a maintenance notification (MN). Cost fields are kept exactly
// as entered; CustomsDutyRate and the exchange rate baked into
// LandedTotalCost are snapshots of the configuration at write time.
type Request struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	MNNumber          string          `json:"mn_number" gorm:"column:mn_number;size:100;uniqueIndex;not null"`
	IssueDate         time.Time       `json:"mn_issue_date" gorm:"column:mn_issue_date"`
	DateLogged        time.Time       `json:"date_logged"`
	Requester         string          `json:"requester" gorm:"size:255"`
	CostArea          string          `json:"cost_area" gorm:"size:255;index;not null"`
	Status            string          `json:"status" gorm:"size:50;default:Pending"`
	Particulars       string          `json:"mn_particulars" gorm:"column:mn_particulars;size:200"`
	Category          string          `json:"mn_category" gorm:"column:mn_category;size:100"`
	Department        string          `json:"department" gorm:"size:255"`
	Location          string          `json:"location" gorm:"size:255"`
	SupplierVendor    string          `json:"supplier_vendor" gorm:"size:255"`
	SupplierType      string          `json:"supplier_type" gorm:"size:20"`
	Currency          string          `json:"currency" gorm:"size:10"`
	ForeignSpareCost  decimal.Decimal `json:"foreign_spare_cost" gorm:"type:decimal(18,2)"`
	FreightFCACharges decimal.Decimal `json:"freight_fca_charges" gorm:"column:freight_fca_charges;type:decimal(18,2)"`
	CustomsDutyRate   decimal.Decimal `json:"customs_duty_rate" gorm:"type:decimal(8,4)"`
	LocalCostWoVatAit decimal.Decimal `json:"local_cost_wo_vat_ait" gorm:"type:decimal(18,2)"`
	VatAit            decimal.Decimal `json:"vat_ait" gorm:"type:decimal(18,2)"`
	LandedTotalCost   decimal.Decimal `json:"landed_total_cost" gorm:"type:decimal(18,2)"`
	DateSentHO        time.Time       `json:"date_sent_ho" gorm:"column:date_sent_ho"`
	PlantRemarks      string          `json:"plant_remarks" gorm:"type:text"`
}

// RequestInput is the submission/edit payload. Dates arrive as YYYY-MM-DD
// strings, matching the forms.
type RequestInput struct {
	MNNumber          string          `json:"mn_number" validate:"required"`
	IssueDate         string          `json:"mn_issue_date" validate:"required"`
	Requester         string          `json:"requester"`
	CostArea          string          `json:"cost_area" validate:"required"`
	Particulars       string          `json:"mn_particulars" validate:"required,max=200"`
	Category          string          `json:"mn_category" validate:"required"`
	Department        string          `json:"department" validate:"required"`
	Location          string          `json:"location" validate:"required"`
	SupplierVendor    string          `json:"supplier_vendor" validate:"required"`
	SupplierType      string          `json:"supplier_type" validate:"required,oneof=Local Foreign"`
	Currency          string          `json:"currency" validate:"required"`
	ForeignSpareCost  decimal.Decimal `json:"foreign_spare_cost"`
	FreightFCACharges decimal.Decimal `json:"freight_fca_charges"`
	LocalCostWoVatAit decimal.Decimal `json:"local_cost_wo_vat_ait"`
	VatAit            decimal.Decimal `json:"vat_ait"`
	DateSentHO        string          `json:"date_sent_ho" validate:"required"`
	PlantRemarks      string          `json:"plant_remarks"`
}
