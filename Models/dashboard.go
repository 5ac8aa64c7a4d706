package Models

import (
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StageMetric is one step of a procurement funnel (count + BDT amount).
type StageMetric struct {
	Stage  string          `json:"stage"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardData is the aggregate snapshot behind the dashboard charts.
type DashboardData struct {
	BudgetTotals        LedgerTotals               `json:"budget_totals"`
	BalanceSheet        []LedgerRow                `json:"balance_sheet"`
	RequestCount        int                        `json:"request_count"`
	StatusCounts        map[string]int             `json:"status_counts"`
	CategorySpend       map[string]decimal.Decimal `json:"category_spend"`
	SupplierTypeSpend   map[string]decimal.Decimal `json:"supplier_type_spend"`
	ForeignTracking     []StageMetric              `json:"foreign_tracking"`
	LocalTracking       []StageMetric              `json:"local_tracking"`
	IndentTotal         decimal.Decimal            `json:"indent_total"`
	IndentMonthly       []NamedAmount              `json:"indent_monthly"`
	TopPurchasedItems   []NamedAmount              `json:"top_purchased_items"`
	LocalVatAitTotal    decimal.Decimal            `json:"local_vat_ait_total"`
	ForeignLandedTotal  decimal.Decimal            `json:"foreign_landed_total"`
	ForeignSpareTotal   decimal.Decimal            `json:"foreign_spare_total"`
	ForeignFreightTotal decimal.Decimal            `json:"foreign_freight_total"`
}

// financeApprovedOrLater reports whether a status sits at or past finance
// approval in the workflow.
func financeApprovedOrLater(status string) bool {
	switch status {
	case StatusFinanceApproved, StatusPOIssued, StatusCompleted:
		return true
	}
	return false
}

// ComputeDashboardData rebuilds every dashboard aggregate from the store.
// Like the budget ledger it is a pure projection, recomputed per call.
func ComputeDashboardData(db *gorm.DB) (*DashboardData, error) {
	ledger, err := ComputeBudgetLedger(db)
	if err != nil {
		return nil, err
	}

	var requests []Request
	if err := db.Find(&requests).Error; err != nil {
		return nil, storeFailure(err)
	}
	var trackers []LcPoTracker
	if err := db.Find(&trackers).Error; err != nil {
		return nil, storeFailure(err)
	}
	var headers []IndentPurchaseRecord
	if err := db.Find(&headers).Error; err != nil {
		return nil, storeFailure(err)
	}
	var goods []IndentGoodsDetail
	if err := db.Find(&goods).Error; err != nil {
		return nil, storeFailure(err)
	}

	trackerByMN := make(map[string]LcPoTracker, len(trackers))
	for _, t := range trackers {
		trackerByMN[t.MNNumber] = t
	}

	data := &DashboardData{
		BudgetTotals:      ledger.Totals,
		BalanceSheet:      ledger.Rows,
		RequestCount:      len(requests),
		StatusCounts:      make(map[string]int),
		CategorySpend:     make(map[string]decimal.Decimal),
		SupplierTypeSpend: make(map[string]decimal.Decimal),
	}

	var foreignCount, foreignApproved, foreignTransmitted int
	var foreignAmount, foreignApprovedAmount, foreignTransmittedAmount decimal.Decimal
	var localCount, localPOIssued, localDelivered int
	var localAmount, localPOIssuedAmount, localDeliveredAmount decimal.Decimal

	for _, req := range requests {
		data.StatusCounts[req.Status]++
		data.CategorySpend[req.Category] = data.CategorySpend[req.Category].Add(req.LandedTotalCost)
		data.SupplierTypeSpend[req.SupplierType] = data.SupplierTypeSpend[req.SupplierType].Add(req.LandedTotalCost)

		switch req.SupplierType {
		case SupplierForeign:
			foreignCount++
			foreignAmount = foreignAmount.Add(req.LandedTotalCost)
			data.ForeignLandedTotal = data.ForeignLandedTotal.Add(req.LandedTotalCost)
			data.ForeignSpareTotal = data.ForeignSpareTotal.Add(req.ForeignSpareCost)
			data.ForeignFreightTotal = data.ForeignFreightTotal.Add(req.FreightFCACharges)
			if financeApprovedOrLater(req.Status) {
				foreignApproved++
				foreignApprovedAmount = foreignApprovedAmount.Add(req.LandedTotalCost)
			}
			if _, ok := trackerByMN[req.MNNumber]; ok {
				foreignTransmitted++
				foreignTransmittedAmount = foreignTransmittedAmount.Add(req.LandedTotalCost)
			}
		case SupplierLocal:
			localCount++
			localAmount = localAmount.Add(req.LandedTotalCost)
			data.LocalVatAitTotal = data.LocalVatAitTotal.Add(req.VatAit)
			if req.Status == StatusPOIssued {
				localPOIssued++
				localPOIssuedAmount = localPOIssuedAmount.Add(req.LandedTotalCost)
			}
			if t, ok := trackerByMN[req.MNNumber]; ok && t.DeliveryCompleted == "Yes" {
				localDelivered++
				localDeliveredAmount = localDeliveredAmount.Add(req.LandedTotalCost)
			}
		}
	}

	data.ForeignTracking = []StageMetric{
		{Stage: "MN Foreign", Count: foreignCount, Amount: foreignAmount},
		{Stage: "Finance Approved", Count: foreignApproved, Amount: foreignApprovedAmount},
		{Stage: "LC/PO Issued", Count: foreignTransmitted, Amount: foreignTransmittedAmount},
	}
	data.LocalTracking = []StageMetric{
		{Stage: "MN Local", Count: localCount, Amount: localAmount},
		{Stage: "PO Issued", Count: localPOIssued, Amount: localPOIssuedAmount},
		{Stage: "Delivery Completed", Count: localDelivered, Amount: localDeliveredAmount},
	}

	monthly := make(map[string]decimal.Decimal)
	for _, header := range headers {
		data.IndentTotal = data.IndentTotal.Add(header.TotalBillAmount)
		month := header.BillDate.Format("2006-01")
		monthly[month] = monthly[month].Add(header.TotalBillAmount)
	}
	for month, amount := range monthly {
		data.IndentMonthly = append(data.IndentMonthly, NamedAmount{Name: month, Amount: amount})
	}
	sort.Slice(data.IndentMonthly, func(i, j int) bool {
		return data.IndentMonthly[i].Name < data.IndentMonthly[j].Name
	})

	byItem := make(map[string]decimal.Decimal)
	for _, item := range goods {
		byItem[item.Description] = byItem[item.Description].Add(item.Amount)
	}
	for name, amount := range byItem {
		data.TopPurchasedItems = append(data.TopPurchasedItems, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(data.TopPurchasedItems, func(i, j int) bool {
		if data.TopPurchasedItems[i].Amount.Equal(data.TopPurchasedItems[j].Amount) {
			return data.TopPurchasedItems[i].Name < data.TopPurchasedItems[j].Name
		}
		return data.TopPurchasedItems[i].Amount.GreaterThan(data.TopPurchasedItems[j].Amount)
	})
	if len(data.TopPurchasedItems) > 10 {
		data.TopPurchasedItems = data.TopPurchasedItems[:10]
	}

	return data, nil
}
