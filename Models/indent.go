package Models

import (
	"time"

	"github.com/shopspring/decimal"
)

var PaymentModes = []string{"Cash", "Cheque", "Online Transfer", "Credit"}

// IndentPurchaseRecord is a purchase bill header. BillNo is the business
// key; TotalBillAmount is the stored sum of the attached line items and is
// kept in sync on every line-item mutation.
type IndentPurchaseRecord struct {
	BillNo            string          `json:"bill_no" gorm:"primaryKey;size:100"`
	IndentNo          string          `json:"indent_no" gorm:"size:100"`
	GrnNo             string          `json:"grn_no" gorm:"size:100"`
	Supplier          string          `json:"supplier" gorm:"size:255"`
	BillDate          time.Time       `json:"bill_date"`
	PaymentMode       string          `json:"payment_mode" gorm:"size:50"`
	TotalBillAmount   decimal.Decimal `json:"total_bill_amount" gorm:"type:decimal(18,2)"`
	Remarks           string          `json:"remarks" gorm:"type:text"`
	BillPaymentStatus string          `json:"bill_payment_status" gorm:"size:50"`
}

// IndentGoodsDetail is a bill line item. IndentNo stores the header's
// BillNo, preserving the legacy column name.
type IndentGoodsDetail struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	IndentNo    string          `json:"indent_no" gorm:"size:100;index;not null"`
	Description string          `json:"description" gorm:"size:500"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(18,2)"`
	Unit        string          `json:"unit" gorm:"size:50"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(18,2)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(18,2)"`
}

type IndentHeaderInput struct {
	BillNo            string `json:"bill_no" validate:"required"`
	IndentNo          string `json:"indent_no"`
	GrnNo             string `json:"grn_no"`
	Supplier          string `json:"supplier"`
	BillDate          string `json:"bill_date" validate:"required"`
	PaymentMode       string `json:"payment_mode" validate:"required,oneof=Cash Cheque 'Online Transfer' Credit"`
	Remarks           string `json:"remarks"`
	BillPaymentStatus string `json:"bill_payment_status"`
}

type IndentItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
}
