package Models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateRequestValidation(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")

	missing := localRequestInput("", "Boiler", "1000", "0")
	if _, err := CreateRequest(db, missing, "tester"); CodeOf(err) != ErrMissingField {
		t.Fatalf("blank MN number: code = %v, want %v", CodeOf(err), ErrMissingField)
	}

	unknownArea := localRequestInput("MN-010", "Turbine", "1000", "0")
	if _, err := CreateRequest(db, unknownArea, "tester"); CodeOf(err) != ErrUnknownCostArea {
		t.Fatalf("unknown cost area: code = %v, want %v", CodeOf(err), ErrUnknownCostArea)
	}

	negative := localRequestInput("MN-011", "Boiler", "1000", "0")
	negative.VatAit = decimal.NewFromInt(-5)
	if _, err := CreateRequest(db, negative, "tester"); CodeOf(err) != ErrInvalidAmount {
		t.Fatalf("negative cost: code = %v, want %v", CodeOf(err), ErrInvalidAmount)
	}

	zeroCost := localRequestInput("MN-012", "Boiler", "0", "0")
	if _, err := CreateRequest(db, zeroCost, "tester"); CodeOf(err) != ErrInvalidAmount {
		t.Fatalf("zero landed cost: code = %v, want %v", CodeOf(err), ErrInvalidAmount)
	}
}

func TestCreateRequestTrimsAndDeduplicates(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")

	padded := localRequestInput("  MN-020  ", "Boiler", "1000", "0")
	created := mustCreateRequest(t, db, padded)
	if created.MNNumber != "MN-020" {
		t.Fatalf("MN number = %q, want trimmed %q", created.MNNumber, "MN-020")
	}
	if created.Status != StatusPending {
		t.Fatalf("status = %q, want %q", created.Status, StatusPending)
	}

	duplicate := localRequestInput("MN-020", "Boiler", "500", "0")
	if _, err := CreateRequest(db, duplicate, "tester"); CodeOf(err) != ErrDuplicateKey {
		t.Fatalf("duplicate MN: code = %v, want %v", CodeOf(err), ErrDuplicateKey)
	}
}

func TestCreateRequestSnapshotsDuty(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "10000000")

	in := localRequestInput("MN-030", "Boiler", "0", "0")
	in.SupplierType = SupplierForeign
	in.Currency = "USD"
	in.ForeignSpareCost = dec(t, "1000")
	in.FreightFCACharges = dec(t, "200")
	created := mustCreateRequest(t, db, in)

	// Defaults: duty 0.05, USD 110 -> (1000*1.05 + 200)*110 = 137500
	if want := dec(t, "137500"); !created.LandedTotalCost.Equal(want) {
		t.Fatalf("landed cost = %s, want %s", created.LandedTotalCost, want)
	}
	if want := dec(t, "0.05"); !created.CustomsDutyRate.Equal(want) {
		t.Fatalf("duty snapshot = %s, want %s", created.CustomsDutyRate, want)
	}

	// Changing the configuration afterwards must not touch the stored row.
	err := SaveExchangeConfig(db, ExchangeConfigInput{
		USDRate:   dec(t, "125"),
		EURRate:   dec(t, "120"),
		GBPRate:   dec(t, "130"),
		INRRate:   dec(t, "1.5"),
		OtherRate: dec(t, "100"),
		DutyPct:   dec(t, "0.10"),
	}, "tester")
	if err != nil {
		t.Fatalf("save config: %v", err)
	}
	var stored Request
	if err := db.Where("mn_number = ?", "MN-030").First(&stored).Error; err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if want := dec(t, "137500"); !stored.LandedTotalCost.Equal(want) {
		t.Fatalf("stored landed cost drifted: %s, want %s", stored.LandedTotalCost, want)
	}
}

func TestCreateRequestBudgetBoundary(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-040", "Boiler", "60000", "0"))

	// Exactly the remaining balance is allowed.
	exact := localRequestInput("MN-041", "Boiler", "40000", "0")
	mustCreateRequest(t, db, exact)

	over := localRequestInput("MN-042", "Boiler", "0.01", "0")
	if _, err := CreateRequest(db, over, "tester"); CodeOf(err) != ErrBudgetExceeded {
		t.Fatalf("over budget: code = %v, want %v", CodeOf(err), ErrBudgetExceeded)
	}
}

func TestUpdateRequestDeltaSameArea(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "150")
	created := mustCreateRequest(t, db, localRequestInput("MN-050", "Boiler", "140", "0"))

	// Remaining is 10, but the edit frees the original 140 first: up to 150
	// is fine.
	grow := localRequestInput("MN-050", "Boiler", "150", "0")
	updated, err := UpdateRequest(db, created.ID, grow, "admin")
	if err != nil {
		t.Fatalf("grow within freed budget: %v", err)
	}
	if want := dec(t, "150"); !updated.LandedTotalCost.Equal(want) {
		t.Fatalf("landed cost = %s, want %s", updated.LandedTotalCost, want)
	}

	tooBig := localRequestInput("MN-050", "Boiler", "151", "0")
	if _, err := UpdateRequest(db, created.ID, tooBig, "admin"); CodeOf(err) != ErrBudgetExceeded {
		t.Fatalf("over freed budget: code = %v, want %v", CodeOf(err), ErrBudgetExceeded)
	}
}

func TestUpdateRequestMoveToOtherAreaGetsNoCredit(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "1000")
	mustCreateHead(t, db, "Utility", "Compressor", "100")
	created := mustCreateRequest(t, db, localRequestInput("MN-060", "Boiler", "900", "0"))

	// The old area's 900 does not help in the new area.
	move := localRequestInput("MN-060", "Compressor", "150", "0")
	if _, err := UpdateRequest(db, created.ID, move, "admin"); CodeOf(err) != ErrBudgetExceeded {
		t.Fatalf("move over target budget: code = %v, want %v", CodeOf(err), ErrBudgetExceeded)
	}

	fits := localRequestInput("MN-060", "Compressor", "100", "0")
	updated, err := UpdateRequest(db, created.ID, fits, "admin")
	if err != nil {
		t.Fatalf("move within target budget: %v", err)
	}
	if updated.CostArea != "Compressor" {
		t.Fatalf("cost area = %q, want Compressor", updated.CostArea)
	}

	// The old area is fully freed after the move.
	ledger, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("compute ledger: %v", err)
	}
	boiler, _ := ledger.Area("Boiler")
	if !boiler.UtilizedCost.IsZero() {
		t.Fatalf("Boiler utilized = %s, want 0 after move", boiler.UtilizedCost)
	}
}

func TestUpdateRequestRejectsDuplicateMNNumber(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-070", "Boiler", "1000", "0"))
	other := mustCreateRequest(t, db, localRequestInput("MN-071", "Boiler", "1000", "0"))

	steal := localRequestInput("MN-070", "Boiler", "1000", "0")
	if _, err := UpdateRequest(db, other.ID, steal, "admin"); CodeOf(err) != ErrDuplicateKey {
		t.Fatalf("duplicate MN on edit: code = %v, want %v", CodeOf(err), ErrDuplicateKey)
	}

	// Keeping its own number is not a duplicate.
	keep := localRequestInput("MN-071", "Boiler", "1200", "0")
	if _, err := UpdateRequest(db, other.ID, keep, "admin"); err != nil {
		t.Fatalf("edit keeping own MN: %v", err)
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	created := mustCreateRequest(t, db, localRequestInput("MN-080", "Boiler", "1000", "0"))

	updated, err := UpdateRequestStatus(db, created.ID, StatusFinanceApproved, "admin")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusFinanceApproved {
		t.Fatalf("status = %q, want %q", updated.Status, StatusFinanceApproved)
	}

	if _, err := UpdateRequestStatus(db, created.ID, "Shipped", "admin"); CodeOf(err) != ErrMissingField {
		t.Fatalf("unknown status: code = %v, want %v", CodeOf(err), ErrMissingField)
	}
	if _, err := UpdateRequestStatus(db, 9999, StatusRejected, "admin"); CodeOf(err) != ErrNotFound {
		t.Fatalf("missing request: code = %v, want %v", CodeOf(err), ErrNotFound)
	}
}

func TestListRequestsFilters(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateHead(t, db, "Utility", "Compressor", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-090", "Boiler", "1000", "0"))
	mustCreateRequest(t, db, localRequestInput("MN-091", "Compressor", "1000", "0"))

	all, err := ListRequests(db, RequestFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}

	boiler, err := ListRequests(db, RequestFilter{CostArea: "Boiler"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(boiler) != 1 || boiler[0].MNNumber != "MN-090" {
		t.Fatalf("filtered = %+v, want only MN-090", boiler)
	}
}
