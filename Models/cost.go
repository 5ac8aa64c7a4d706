package Models

import (
	"github.com/shopspring/decimal"
)

// CostInputs are the raw cost fields of a request.
type CostInputs struct {
	ForeignSpareCost  decimal.Decimal
	FreightFCACharges decimal.Decimal
	LocalCostWoVatAit decimal.Decimal
	VatAit            decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ComputeLandedCost converts the raw cost fields into the fully loaded BDT
// cost:
//
//	landed = (foreign*(1+duty) + freight)*fx + local + vat
//
// The formula is fixed; budget utilization and every report depend on it
// matching the stored values exactly.
func ComputeLandedCost(in CostInputs, dutyPct, fxRate decimal.Decimal) decimal.Decimal {
	foreign := in.ForeignSpareCost.Mul(one.Add(dutyPct))
	return foreign.Add(in.FreightFCACharges).Mul(fxRate).
		Add(in.LocalCostWoVatAit).
		Add(in.VatAit)
}

// validateCostInputs rejects negative cost components before the formula
// runs.
func validateCostInputs(in CostInputs) error {
	for _, c := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"foreign_spare_cost", in.ForeignSpareCost},
		{"freight_fca_charges", in.FreightFCACharges},
		{"local_cost_wo_vat_ait", in.LocalCostWoVatAit},
		{"vat_ait", in.VatAit},
	} {
		if c.value.IsNegative() {
			return invalidAmount(c.name + " must not be negative")
		}
	}
	return nil
}
