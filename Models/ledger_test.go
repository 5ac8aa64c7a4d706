package Models

import (
	"testing"
)

func TestComputeBudgetLedgerSums(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateHead(t, db, "Utility", "Compressor", "50000")

	mustCreateRequest(t, db, localRequestInput("MN-001", "Boiler", "20000", "3000"))
	mustCreateRequest(t, db, localRequestInput("MN-002", "Boiler", "10000", "1500"))
	mustCreateRequest(t, db, localRequestInput("MN-003", "Compressor", "5000", "0"))

	ledger, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("compute ledger: %v", err)
	}
	if len(ledger.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ledger.Rows))
	}

	boiler, ok := ledger.Area("Boiler")
	if !ok {
		t.Fatal("Boiler row missing")
	}
	if want := dec(t, "34500"); !boiler.UtilizedCost.Equal(want) {
		t.Fatalf("Boiler utilized = %s, want %s", boiler.UtilizedCost, want)
	}
	if want := dec(t, "65500"); !boiler.RemainingBalance.Equal(want) {
		t.Fatalf("Boiler remaining = %s, want %s", boiler.RemainingBalance, want)
	}
	if want := dec(t, "34.5"); !boiler.UtilizationPct.Equal(want) {
		t.Fatalf("Boiler utilization pct = %s, want %s", boiler.UtilizationPct, want)
	}

	if want := dec(t, "150000"); !ledger.Totals.TotalBudget.Equal(want) {
		t.Fatalf("total budget = %s, want %s", ledger.Totals.TotalBudget, want)
	}
	if want := dec(t, "39500"); !ledger.Totals.UtilizedCost.Equal(want) {
		t.Fatalf("total utilized = %s, want %s", ledger.Totals.UtilizedCost, want)
	}
	if want := dec(t, "110500"); !ledger.Totals.RemainingBalance.Equal(want) {
		t.Fatalf("total remaining = %s, want %s", ledger.Totals.RemainingBalance, want)
	}
}

func TestComputeBudgetLedgerZeroRequestHead(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Production", "Mixer", "75000")

	ledger, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("compute ledger: %v", err)
	}
	row, ok := ledger.Area("Mixer")
	if !ok {
		t.Fatal("Mixer row missing")
	}
	if !row.UtilizedCost.IsZero() {
		t.Fatalf("utilized = %s, want 0", row.UtilizedCost)
	}
	if !row.RemainingBalance.Equal(row.TotalBudget) {
		t.Fatalf("remaining = %s, want full budget %s", row.RemainingBalance, row.TotalBudget)
	}
	if !row.UtilizationPct.IsZero() {
		t.Fatalf("utilization pct = %s, want 0", row.UtilizationPct)
	}
}

func TestComputeBudgetLedgerExcludesOrphanedRequests(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-001", "Boiler", "20000", "0"))

	// Fiscal-year reset: heads go, the request history stays.
	if _, err := ClearBudgetHeads(db, "tester"); err != nil {
		t.Fatalf("clear heads: %v", err)
	}
	mustCreateHead(t, db, "Production", "Mixer", "50000")

	ledger, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("compute ledger: %v", err)
	}
	if len(ledger.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(ledger.Rows))
	}
	if !ledger.Totals.UtilizedCost.IsZero() {
		t.Fatalf("orphaned request leaked into totals: utilized = %s", ledger.Totals.UtilizedCost)
	}
}

func TestComputeBudgetLedgerIsPureRecomputation(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-001", "Boiler", "20000", "0"))

	first, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("compute ledger: %v", err)
	}
	second, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("recompute ledger: %v", err)
	}
	if !first.Totals.UtilizedCost.Equal(second.Totals.UtilizedCost) {
		t.Fatalf("recomputation drifted: %s vs %s", first.Totals.UtilizedCost, second.Totals.UtilizedCost)
	}

	// Mutating the stored request is immediately reflected, proving no
	// running total is cached anywhere.
	if err := db.Model(&Request{}).Where("mn_number = ?", "MN-001").
		Update("landed_total_cost", dec(t, "30000")).Error; err != nil {
		t.Fatalf("tweak request: %v", err)
	}
	third, err := ComputeBudgetLedger(db)
	if err != nil {
		t.Fatalf("recompute ledger: %v", err)
	}
	if want := dec(t, "30000"); !third.Totals.UtilizedCost.Equal(want) {
		t.Fatalf("utilized = %s, want %s", third.Totals.UtilizedCost, want)
	}
}
