package Models

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory store with the schema and the
// default exchange configuration installed.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A single connection keeps every session on the same memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	for key, value := range defaultConfig() {
		if err := db.Create(&ExchangeConfig{Key: key, Value: value}).Error; err != nil {
			t.Fatalf("seed config: %v", err)
		}
	}
	return db
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

func mustCreateHead(t *testing.T, db *gorm.DB, department, costArea, budget string) *BudgetHead {
	t.Helper()
	head, err := UpsertBudgetHead(db, BudgetHeadInput{
		Department:  department,
		CostArea:    costArea,
		TotalBudget: dec(t, budget),
	}, "tester")
	if err != nil {
		t.Fatalf("create budget head %s: %v", costArea, err)
	}
	return head
}

// localRequestInput builds a BDT-only submission so the landed cost is
// exactly local + vat, independent of the configured rates.
func localRequestInput(mnNumber, costArea, local, vat string) RequestInput {
	return RequestInput{
		MNNumber:          mnNumber,
		IssueDate:         "2026-01-10",
		Requester:         "Rahim",
		CostArea:          costArea,
		Particulars:       "Pump bearing replacement",
		Category:          CategoryRM,
		Department:        "Utility",
		Location:          "Plant 1",
		SupplierVendor:    "Dhaka Machinery",
		SupplierType:      SupplierLocal,
		Currency:          "BDT",
		LocalCostWoVatAit: decimal.RequireFromString(local),
		VatAit:            decimal.RequireFromString(vat),
		DateSentHO:        "2026-01-12",
	}
}

func mustCreateRequest(t *testing.T, db *gorm.DB, in RequestInput) *Request {
	t.Helper()
	request, err := CreateRequest(db, in, "tester")
	if err != nil {
		t.Fatalf("create request %s: %v", in.MNNumber, err)
	}
	return request
}
