package Models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LcPoTracker is the procurement/shipment/payment sub-record, one per MN.
// DelayDays is derived from LC/PO date minus the date the MN was sent to
// head office.
type LcPoTracker struct {
	MNNumber               string          `json:"mn_number" gorm:"column:mn_number;primaryKey;size:100"`
	LcPoNr                 string          `json:"lc_po_nr" gorm:"column:lc_po_nr;size:100"`
	LcPoDate               *time.Time      `json:"lc_po_date" gorm:"column:lc_po_date"`
	ETAShipmentDelivery    *time.Time      `json:"eta_shipment_delivery"`
	DeliveryCompleted      string          `json:"delivery_completed" gorm:"size:5;default:No"`
	DateOfDelivery         *time.Time      `json:"date_of_delivery"`
	CommercialStoreRemarks string          `json:"commercial_store_remarks" gorm:"type:text"`
	DelayDays              int             `json:"delay_days"`
	BillSubmittedVendor    string          `json:"bill_submitted_vendor" gorm:"size:255"`
	BillTrackingID         string          `json:"bill_tracking_id" gorm:"size:100"`
	DateBillSubmitAcc      *time.Time      `json:"date_bill_submit_acc"`
	DateBillSubmitHO       *time.Time      `json:"date_bill_submit_ho" gorm:"column:date_bill_submit_ho"`
	BillPaid               string          `json:"bill_paid" gorm:"size:5;default:No"`
	ActualLcCosting        decimal.Decimal `json:"actual_lc_costing" gorm:"type:decimal(18,2)"`
}

type LcPoTrackerInput struct {
	LcPoNr                 string          `json:"lc_po_nr"`
	LcPoDate               string          `json:"lc_po_date"`
	ETAShipmentDelivery    string          `json:"eta_shipment_delivery"`
	DeliveryCompleted      string          `json:"delivery_completed" validate:"omitempty,oneof=Yes No"`
	DateOfDelivery         string          `json:"date_of_delivery"`
	CommercialStoreRemarks string          `json:"commercial_store_remarks"`
	BillSubmittedVendor    string          `json:"bill_submitted_vendor"`
	BillTrackingID         string          `json:"bill_tracking_id"`
	DateBillSubmitAcc      string          `json:"date_bill_submit_acc"`
	DateBillSubmitHO       string          `json:"date_bill_submit_ho"`
	BillPaid               string          `json:"bill_paid" validate:"omitempty,oneof=Yes No"`
	ActualLcCosting        decimal.Decimal `json:"actual_lc_costing"`
}
