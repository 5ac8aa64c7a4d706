package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExchangeConfig holds the manually maintained exchange rates and the
// customs duty percentage as key/value rows.
type ExchangeConfig struct {
	Key   string          `json:"key" gorm:"primaryKey;size:50"`
	Value decimal.Decimal `json:"value" gorm:"type:decimal(18,4)"`
}

const (
	ConfigKeyUSDRate   = "USD_rate"
	ConfigKeyEURRate   = "EUR_rate"
	ConfigKeyGBPRate   = "GBP_rate"
	ConfigKeyINRRate   = "INR_rate"
	ConfigKeyOtherRate = "OTHER_rate"
	ConfigKeyDutyPct   = "CustomsDuty_pct"
)

// Currencies accepted on a request. BDT is the ledger currency and always
// converts at 1.
var Currencies = []string{"BDT", "USD", "EUR", "GBP", "INR", "Other"}

// Rates is the configuration snapshot every landed-cost computation runs
// against.
type Rates struct {
	FX   map[string]decimal.Decimal `json:"fx"`
	Duty decimal.Decimal            `json:"customs_duty_pct"`
}

func (r Rates) FXRate(currency string) (decimal.Decimal, bool) {
	rate, ok := r.FX[currency]
	return rate, ok
}

func defaultConfig() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		ConfigKeyUSDRate:   decimal.NewFromFloat(110.00),
		ConfigKeyEURRate:   decimal.NewFromFloat(120.00),
		ConfigKeyGBPRate:   decimal.NewFromFloat(130.00),
		ConfigKeyINRRate:   decimal.NewFromFloat(1.50),
		ConfigKeyOtherRate: decimal.NewFromFloat(100.00),
		ConfigKeyDutyPct:   decimal.NewFromFloat(0.05),
	}
}

// GetConfigRates reads the exchange configuration, falling back to the
// seeded defaults for any missing key.
func GetConfigRates(db *gorm.DB) (Rates, error) {
	var rows []ExchangeConfig
	if err := db.Find(&rows).Error; err != nil {
		return Rates{}, storeFailure(err)
	}

	values := defaultConfig()
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	return Rates{
		FX: map[string]decimal.Decimal{
			"BDT":   decimal.NewFromInt(1),
			"USD":   values[ConfigKeyUSDRate],
			"EUR":   values[ConfigKeyEURRate],
			"GBP":   values[ConfigKeyGBPRate],
			"INR":   values[ConfigKeyINRRate],
			"Other": values[ConfigKeyOtherRate],
		},
		Duty: values[ConfigKeyDutyPct],
	}, nil
}

// ExchangeConfigInput is the admin configuration payload.
type ExchangeConfigInput struct {
	USDRate   decimal.Decimal `json:"usd_rate"`
	EURRate   decimal.Decimal `json:"eur_rate"`
	GBPRate   decimal.Decimal `json:"gbp_rate"`
	INRRate   decimal.Decimal `json:"inr_rate"`
	OtherRate decimal.Decimal `json:"other_rate"`
	DutyPct   decimal.Decimal `json:"customs_duty_pct"`
}

// SaveExchangeConfig replaces the financial configuration. Rates must be
// positive; duty is a fraction in [0,1].
func SaveExchangeConfig(db *gorm.DB, in ExchangeConfigInput, actor string) error {
	rates := map[string]decimal.Decimal{
		ConfigKeyUSDRate:   in.USDRate,
		ConfigKeyEURRate:   in.EURRate,
		ConfigKeyGBPRate:   in.GBPRate,
		ConfigKeyINRRate:   in.INRRate,
		ConfigKeyOtherRate: in.OtherRate,
	}
	for key, rate := range rates {
		if !rate.IsPositive() {
			return invalidAmount(key + " must be greater than 0")
		}
	}
	if in.DutyPct.IsNegative() || in.DutyPct.GreaterThan(decimal.NewFromInt(1)) {
		return invalidAmount("customs duty must be between 0 and 1")
	}

	rates[ConfigKeyDutyPct] = in.DutyPct

	err := db.Transaction(func(tx *gorm.DB) error {
		for key, value := range rates {
			row := ExchangeConfig{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return LogEvent(tx, actor, "CONFIG_UPDATE",
			"Updated financial configuration: duty "+in.DutyPct.String()+
				", USD "+in.USDRate.String()+", EUR "+in.EURRate.String()+
				", GBP "+in.GBPRate.String()+", INR "+in.INRRate.String()+
				", Other "+in.OtherRate.String())
	})
	if err != nil {
		return AsOpError(err)
	}
	return nil
}
