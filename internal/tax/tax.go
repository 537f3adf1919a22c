// Package tax computes Canadian sales taxes on invoice subtotals.
package tax

import (
	"factureme/entity"
	"factureme/lib/clock"
)

const (
	rateTVS = 5.0
	rateTVQ = 9.975
)

// retail sales tax, provinces not listed collect none
var ratesTVP = map[string]float64{
	"BC": 7,
	"SK": 6,
	"MB": 7,
}

// harmonized sales tax
var ratesTVH = map[string]float64{
	"ON": 13,
	"NB": 15,
	"NL": 15,
	"NS": 14,
	"PE": 15,
}

// Rate returns the percentage for taxType in province; ok is false only for an unknown tax type.
// A recognized type in a province without that tax yields a zero rate.
func Rate(taxType entity.TaxType, province string) (rate float64, ok bool) {
	switch taxType {
	case entity.TaxTVS:
		return rateTVS, true
	case entity.TaxTVQ:
		return rateTVQ, true
	case entity.TaxTVP:
		return ratesTVP[province], true
	case entity.TaxTVH:
		return ratesTVH[province], true
	}
	return 0, false
}

// Calculate returns the tax line for amount, nil when taxType is unknown
func Calculate(amount float64, taxType entity.TaxType, province string) *entity.Tax {
	rate, ok := Rate(taxType, province)
	if !ok {
		return nil
	}
	return &entity.Tax{
		Name:   taxType,
		Rate:   rate,
		Amount: clock.Round2(amount * rate / 100),
	}
}

// ForInvoice lists the tax lines of an invoice. Nothing is computed unless the invoice is a
// business invoice with taxes included, and each type needs the business registration number.
func ForInvoice(f *entity.Facture, business *entity.Business, subtotal float64) []*entity.Tax {
	taxes := make([]*entity.Tax, 0)
	if f == nil || business == nil || !f.IsBusinessInvoice || !f.IncludesTaxes {
		return taxes
	}
	province := business.Province()
	for _, taxType := range entity.TaxTypes() {
		if business.RegistrationNumber(taxType) == nil {
			continue
		}
		if t := Calculate(subtotal, taxType, province); t != nil {
			taxes = append(taxes, t)
		}
	}
	return taxes
}
