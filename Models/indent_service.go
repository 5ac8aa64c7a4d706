package Models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func validateIndentItem(in *IndentItemInput) error {
	in.Description = strings.TrimSpace(in.Description)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := validateInput(*in); err != nil {
		return err
	}
	if !in.Quantity.IsPositive() {
		return invalidAmount("quantity must be greater than 0")
	}
	if in.Rate.IsNegative() {
		return invalidAmount("rate must not be negative")
	}
	return nil
}

// CreateIndentBill records a new purchase bill with its line items as one
// atomic write. The header's TotalBillAmount is the sum of the computed
// line amounts and must be positive.
func CreateIndentBill(db *gorm.DB, header IndentHeaderInput, items []IndentItemInput, actor string) (*IndentPurchaseRecord, error) {
	header.BillNo = strings.TrimSpace(header.BillNo)
	header.IndentNo = strings.TrimSpace(header.IndentNo)
	header.GrnNo = strings.TrimSpace(header.GrnNo)
	header.Supplier = strings.TrimSpace(header.Supplier)
	if err := validateInput(header); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &OpError{Code: ErrMissingField, Field: "items", Message: "cannot save a bill without line items"}
	}

	billDate, err := parseDate(header.BillDate, "bill_date")
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	details := make([]IndentGoodsDetail, 0, len(items))
	for i := range items {
		if err := validateIndentItem(&items[i]); err != nil {
			return nil, err
		}
		amount := items[i].Quantity.Mul(items[i].Rate)
		total = total.Add(amount)
		details = append(details, IndentGoodsDetail{
			IndentNo:    header.BillNo,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			Unit:        items[i].Unit,
			Rate:        items[i].Rate,
			Amount:      amount,
		})
	}
	if !total.IsPositive() {
		return nil, invalidAmount("total bill amount must be greater than 0")
	}

	record := IndentPurchaseRecord{
		BillNo:            header.BillNo,
		IndentNo:          header.IndentNo,
		GrnNo:             header.GrnNo,
		Supplier:          header.Supplier,
		BillDate:          billDate,
		PaymentMode:       header.PaymentMode,
		TotalBillAmount:   total,
		Remarks:           header.Remarks,
		BillPaymentStatus: header.BillPaymentStatus,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&IndentPurchaseRecord{}).Where("bill_no = ?", header.BillNo).Count(&count).Error; err != nil {
			return storeFailure(err)
		}
		if count > 0 {
			return duplicateKey(fmt.Sprintf("a bill with number %q already exists", header.BillNo))
		}
		if err := tx.Create(&record).Error; err != nil {
			return storeFailure(err)
		}
		if err := tx.Create(&details).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "INDENT_RECORD_CREATE",
			fmt.Sprintf("Recorded new purchase bill %s (indent: %s), total %s Tk.", record.BillNo, record.IndentNo, total.StringFixed(2)))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return &record, nil
}

// AddIndentLineItem appends a line item to an existing bill and bumps the
// header total in the same transaction. Returns the new total.
func AddIndentLineItem(db *gorm.DB, billNo string, in IndentItemInput, actor string) (decimal.Decimal, error) {
	billNo = strings.TrimSpace(billNo)
	if err := validateIndentItem(&in); err != nil {
		return decimal.Zero, err
	}
	amount := in.Quantity.Mul(in.Rate)

	var newTotal decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var header IndentPurchaseRecord
		if err := tx.Where("bill_no = ?", billNo).First(&header).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("bill %q not found", billNo))
			}
			return storeFailure(err)
		}

		detail := IndentGoodsDetail{
			IndentNo:    billNo,
			Description: in.Description,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Rate:        in.Rate,
			Amount:      amount,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return storeFailure(err)
		}

		newTotal = header.TotalBillAmount.Add(amount)
		if err := tx.Model(&IndentPurchaseRecord{}).Where("bill_no = ?", billNo).
			Update("total_bill_amount", newTotal).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "INDENT_LINE_ADD",
			fmt.Sprintf("Added line item to bill %s. Item amount: %s Tk. New total: %s Tk.", billNo, amount.StringFixed(2), newTotal.StringFixed(2)))
	})
	if err != nil {
		return decimal.Zero, AsOpError(err)
	}
	return newTotal, nil
}

// DeleteIndentLineItem removes a line item and subtracts its amount from
// the header total in the same transaction. Returns the new total.
func DeleteIndentLineItem(db *gorm.DB, lineID uint, actor string) (decimal.Decimal, error) {
	var newTotal decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var detail IndentGoodsDetail
		if err := tx.First(&detail, lineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("line item %d not found", lineID))
			}
			return storeFailure(err)
		}

		var header IndentPurchaseRecord
		if err := tx.Where("bill_no = ?", detail.IndentNo).First(&header).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("bill %q not found", detail.IndentNo))
			}
			return storeFailure(err)
		}

		if err := tx.Delete(&detail).Error; err != nil {
			return storeFailure(err)
		}

		newTotal = header.TotalBillAmount.Sub(detail.Amount)
		if err := tx.Model(&IndentPurchaseRecord{}).Where("bill_no = ?", header.BillNo).
			Update("total_bill_amount", newTotal).Error; err != nil {
			return storeFailure(err)
		}
		return LogEvent(tx, actor, "INDENT_LINE_DELETE",
			fmt.Sprintf("Deleted line item %d from bill %s. New total: %s Tk.", lineID, header.BillNo, newTotal.StringFixed(2)))
	})
	if err != nil {
		return decimal.Zero, AsOpError(err)
	}
	return newTotal, nil
}

// UpdateIndentHeader edits a bill header. A changed bill number re-keys
// every line item to the new number in the same transaction; the stored
// total is carried over untouched.
func UpdateIndentHeader(db *gorm.DB, billNo string, in IndentHeaderInput, actor string) (*IndentPurchaseRecord, error) {
	billNo = strings.TrimSpace(billNo)
	in.BillNo = strings.TrimSpace(in.BillNo)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	billDate, err := parseDate(in.BillDate, "bill_date")
	if err != nil {
		return nil, err
	}

	var updated IndentPurchaseRecord
	err = db.Transaction(func(tx *gorm.DB) error {
		var header IndentPurchaseRecord
		if err := tx.Where("bill_no = ?", billNo).First(&header).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("bill %q not found", billNo))
			}
			return storeFailure(err)
		}

		if in.BillNo != billNo {
			var count int64
			if err := tx.Model(&IndentPurchaseRecord{}).Where("bill_no = ?", in.BillNo).Count(&count).Error; err != nil {
				return storeFailure(err)
			}
			if count > 0 {
				return duplicateKey(fmt.Sprintf("a bill with number %q already exists", in.BillNo))
			}
		}

		changes := map[string]interface{}{
			"bill_no":             in.BillNo,
			"indent_no":           in.IndentNo,
			"grn_no":              in.GrnNo,
			"supplier":            in.Supplier,
			"bill_date":           billDate,
			"payment_mode":        in.PaymentMode,
			"remarks":             in.Remarks,
			"bill_payment_status": in.BillPaymentStatus,
		}
		if err := tx.Model(&IndentPurchaseRecord{}).Where("bill_no = ?", billNo).Updates(changes).Error; err != nil {
			return storeFailure(err)
		}

		if in.BillNo != billNo {
			if err := tx.Model(&IndentGoodsDetail{}).Where("indent_no = ?", billNo).
				Update("indent_no", in.BillNo).Error; err != nil {
				return storeFailure(err)
			}
			if err := LogEvent(tx, actor, "INDENT_ADMIN_RENAME",
				fmt.Sprintf("Purchase bill %q renamed to %q and header details updated.", billNo, in.BillNo)); err != nil {
				return err
			}
		} else if err := LogEvent(tx, actor, "INDENT_ADMIN_EDIT",
			fmt.Sprintf("Purchase bill %q header details updated.", billNo)); err != nil {
			return err
		}

		return tx.Where("bill_no = ?", in.BillNo).First(&updated).Error
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return &updated, nil
}

// GetIndentBill loads a bill header with its line items.
func GetIndentBill(db *gorm.DB, billNo string) (*IndentPurchaseRecord, []IndentGoodsDetail, error) {
	var header IndentPurchaseRecord
	if err := db.Where("bill_no = ?", billNo).First(&header).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFound(fmt.Sprintf("bill %q not found", billNo))
		}
		return nil, nil, storeFailure(err)
	}
	var items []IndentGoodsDetail
	if err := db.Where("indent_no = ?", billNo).Order("id").Find(&items).Error; err != nil {
		return nil, nil, storeFailure(err)
	}
	return &header, items, nil
}
