package Models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertLcPoTracker creates or updates the procurement/payment tracker row
// of an MN. Delay days derive from the LC/PO date against the date the MN
// went to head office. Recording an LC/PO number against a
// Finance Approved MN bumps it to PO Issued.
func UpsertLcPoTracker(db *gorm.DB, mnNumber string, in LcPoTrackerInput, actor string) (*LcPoTracker, error) {
	mnNumber = strings.TrimSpace(mnNumber)
	if mnNumber == "" {
		return nil, missingField("mn_number")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ActualLcCosting.IsNegative() {
		return nil, invalidAmount("actual_lc_costing must not be negative")
	}

	lcPoDate, err := parseOptionalDate(in.LcPoDate, "lc_po_date")
	if err != nil {
		return nil, err
	}
	eta, err := parseOptionalDate(in.ETAShipmentDelivery, "eta_shipment_delivery")
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseOptionalDate(in.DateOfDelivery, "date_of_delivery")
	if err != nil {
		return nil, err
	}
	billAccDate, err := parseOptionalDate(in.DateBillSubmitAcc, "date_bill_submit_acc")
	if err != nil {
		return nil, err
	}
	billHODate, err := parseOptionalDate(in.DateBillSubmitHO, "date_bill_submit_ho")
	if err != nil {
		return nil, err
	}

	var tracker LcPoTracker
	err = db.Transaction(func(tx *gorm.DB) error {
		var request Request
		if err := tx.Where("mn_number = ?", mnNumber).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(fmt.Sprintf("MN %q not found", mnNumber))
			}
			return storeFailure(err)
		}

		delayDays := 0
		if lcPoDate != nil {
			delayDays = int(lcPoDate.Sub(request.DateSentHO).Hours() / 24)
		}

		tracker = LcPoTracker{
			MNNumber:               mnNumber,
			LcPoNr:                 strings.TrimSpace(in.LcPoNr),
			LcPoDate:               lcPoDate,
			ETAShipmentDelivery:    eta,
			DeliveryCompleted:      defaultYesNo(in.DeliveryCompleted),
			DateOfDelivery:         deliveryDate,
			CommercialStoreRemarks: in.CommercialStoreRemarks,
			DelayDays:              delayDays,
			BillSubmittedVendor:    strings.TrimSpace(in.BillSubmittedVendor),
			BillTrackingID:         strings.TrimSpace(in.BillTrackingID),
			DateBillSubmitAcc:      billAccDate,
			DateBillSubmitHO:       billHODate,
			BillPaid:               defaultYesNo(in.BillPaid),
			ActualLcCosting:        in.ActualLcCosting,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mn_number"}},
			UpdateAll: true,
		}).Create(&tracker).Error; err != nil {
			return storeFailure(err)
		}

		if tracker.LcPoNr != "" && request.Status == StatusFinanceApproved {
			if err := tx.Model(&request).Update("status", StatusPOIssued).Error; err != nil {
				return storeFailure(err)
			}
			if err := LogEvent(tx, actor, "MN_STATUS_CHANGE",
				fmt.Sprintf("MN %s status changed to 'PO Issued' by LC/PO entry.", mnNumber)); err != nil {
				return err
			}
		}

		return LogEvent(tx, actor, "LC_PO_UPDATE",
			fmt.Sprintf("Updated LC/PO tracker for MN %s. LC/PO: %s.", mnNumber, tracker.LcPoNr))
	})
	if err != nil {
		return nil, AsOpError(err)
	}
	return &tracker, nil
}

func defaultYesNo(value string) string {
	if value == "Yes" {
		return "Yes"
	}
	return "No"
}

func ListLcPoTrackers(db *gorm.DB) ([]LcPoTracker, error) {
	var trackers []LcPoTracker
	if err := db.Order("mn_number").Find(&trackers).Error; err != nil {
		return nil, storeFailure(err)
	}
	return trackers, nil
}
