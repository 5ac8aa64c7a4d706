package Models

import (
	"testing"
)

func validConfigInput(t *testing.T) ExchangeConfigInput {
	return ExchangeConfigInput{
		USDRate:   dec(t, "112.50"),
		EURRate:   dec(t, "121"),
		GBPRate:   dec(t, "131"),
		INRRate:   dec(t, "1.45"),
		OtherRate: dec(t, "95"),
		DutyPct:   dec(t, "0.075"),
	}
}

func TestSaveAndGetConfigRates(t *testing.T) {
	db := newTestDB(t)

	if err := SaveExchangeConfig(db, validConfigInput(t), "admin"); err != nil {
		t.Fatalf("save config: %v", err)
	}
	rates, err := GetConfigRates(db)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if want := dec(t, "112.50"); !rates.FX["USD"].Equal(want) {
		t.Fatalf("USD = %s, want %s", rates.FX["USD"], want)
	}
	if want := dec(t, "0.075"); !rates.Duty.Equal(want) {
		t.Fatalf("duty = %s, want %s", rates.Duty, want)
	}
	// BDT is always 1.
	if fx, ok := rates.FXRate("BDT"); !ok || !fx.Equal(dec(t, "1")) {
		t.Fatalf("BDT rate = %s, want 1", fx)
	}
	if _, ok := rates.FXRate("JPY"); ok {
		t.Fatal("JPY should not resolve")
	}
}

func TestGetConfigRatesDefaults(t *testing.T) {
	db := newTestDB(t)
	// Wipe the seeded rows: reads must fall back to the defaults.
	if err := db.Where("1 = 1").Delete(&ExchangeConfig{}).Error; err != nil {
		t.Fatalf("wipe config: %v", err)
	}

	rates, err := GetConfigRates(db)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if want := dec(t, "110"); !rates.FX["USD"].Equal(want) {
		t.Fatalf("default USD = %s, want %s", rates.FX["USD"], want)
	}
	if want := dec(t, "0.05"); !rates.Duty.Equal(want) {
		t.Fatalf("default duty = %s, want %s", rates.Duty, want)
	}
}

func TestSaveExchangeConfigValidation(t *testing.T) {
	db := newTestDB(t)

	zeroRate := validConfigInput(t)
	zeroRate.EURRate = dec(t, "0")
	if err := SaveExchangeConfig(db, zeroRate, "admin"); CodeOf(err) != ErrInvalidAmount {
		t.Fatalf("zero rate: code = %v, want %v", CodeOf(err), ErrInvalidAmount)
	}

	badDuty := validConfigInput(t)
	badDuty.DutyPct = dec(t, "1.5")
	if err := SaveExchangeConfig(db, badDuty, "admin"); CodeOf(err) != ErrInvalidAmount {
		t.Fatalf("duty above 1: code = %v, want %v", CodeOf(err), ErrInvalidAmount)
	}
}

func TestMutationsAppendToEventLog(t *testing.T) {
	db := newTestDB(t)
	mustCreateHead(t, db, "Utility", "Boiler", "100000")
	mustCreateRequest(t, db, localRequestInput("MN-300", "Boiler", "1000", "0"))

	var entries []EventLogEntry
	if err := db.Order("id").Find(&entries).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	actions := make(map[string]int)
	for _, entry := range entries {
		actions[entry.ActionType]++
	}
	if actions["BUDGET_UPDATE"] != 1 {
		t.Fatalf("BUDGET_UPDATE entries = %d, want 1", actions["BUDGET_UPDATE"])
	}
	if actions["MN_SUBMIT"] != 1 {
		t.Fatalf("MN_SUBMIT entries = %d, want 1", actions["MN_SUBMIT"])
	}

	// A rejected mutation leaves no trace.
	before := len(entries)
	if _, err := CreateRequest(db, localRequestInput("MN-300", "Boiler", "1", "0"), "tester"); err == nil {
		t.Fatal("duplicate MN should fail")
	}
	var after int64
	db.Model(&EventLogEntry{}).Count(&after)
	if int(after) != before {
		t.Fatalf("log entries = %d, want %d after rolled-back mutation", after, before)
	}
}

func TestLogEventDefaultsUsername(t *testing.T) {
	db := newTestDB(t)
	if err := LogEvent(db, "", "ADMIN_ACTION", "Nightly cleanup."); err != nil {
		t.Fatalf("log event: %v", err)
	}
	var entry EventLogEntry
	if err := db.Last(&entry).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if entry.Username != "SYSTEM" {
		t.Fatalf("username = %q, want SYSTEM", entry.Username)
	}
}
