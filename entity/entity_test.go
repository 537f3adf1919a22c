package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFor(t *testing.T) {
	assert.Equal(t, FactureMixed, TypeFor(true, true))
	assert.Equal(t, FactureHourly, TypeFor(false, true))
	assert.Equal(t, FactureUnitary, TypeFor(true, false))
	assert.Equal(t, FactureType(""), TypeFor(false, false))
}

func TestItemKey(t *testing.T) {
	assert.Equal(t, "product-3", ItemKey(ItemProduct, 3))
	assert.NotEqual(t, ItemKey(ItemProduct, 3), ItemKey(ItemHourly, 3))
}

func TestFactureDetails(t *testing.T) {
	d := NewFactureDetails(&Facture{IdFacture: 1},
		[]*ObjetFacture{{Quantity: 3, PricePerUnit: 12.5}},
		[]*FactureHoraire{{HourlyRate: 20, StartTime: "2024-01-01T08:00", EndTime: "2024-01-01T16:30", LunchTimeInMinutes: 30}},
	)
	assert.Equal(t, 37.5, d.Products[0].Total)
	assert.Equal(t, 8.0, d.Hourly[0].WorkedHours)
	assert.Equal(t, 160.0, d.Hourly[0].Total)
	assert.Equal(t, 197.5, d.Subtotal)
	assert.Equal(t, 197.5, d.Total)

	d.SetTaxes([]*Tax{{Name: TaxTVS, Rate: 5, Amount: 9.88}, {Name: TaxTVQ, Rate: 9.975, Amount: 19.7}})
	assert.Equal(t, 227.08, d.Total)
	d.SetTaxes(nil)
	assert.NotNil(t, d.Taxes)
	assert.Equal(t, 197.5, d.Total)
}

func TestBusinessRegistrationNumber(t *testing.T) {
	num := "123456789RT0001"
	b := &Business{TvsNumber: &num, Address: &Address{Province: " qc"}}
	assert.Equal(t, &num, b.RegistrationNumber(TaxTVS))
	assert.Nil(t, b.RegistrationNumber(TaxTVQ))
	assert.Nil(t, b.RegistrationNumber("XYZ"))
	assert.Equal(t, "QC", b.Province())

	blank := "  "
	assert.NoError(t, (&Business{Name: "Acme", TvqNumber: &blank}).Bind(nil))
	withBlank := &Business{Name: "Acme", TvqNumber: &blank}
	_ = withBlank.Bind(nil)
	assert.Nil(t, withBlank.TvqNumber)
}

func TestAddressCountryCode(t *testing.T) {
	assert.Equal(t, "CA", (&Address{Country: "ca"}).CountryCode())
	assert.Equal(t, "CA", (&Address{Country: "Canada"}).CountryCode())
	assert.Equal(t, "", (&Address{}).CountryCode())
	var a *Address
	assert.Equal(t, "", a.CountryCode())
	assert.Equal(t, "", a.ProvinceCode())
}

func TestBindNormalizesAddress(t *testing.T) {
	client := &Client{Name: "Dupont", Address: &Address{City: " Montréal ", Province: "qc", Country: " Canada "}}
	require.NoError(t, client.Bind(nil))
	assert.Equal(t, "CA", client.Address.Country)
	assert.Equal(t, "Montréal", client.Address.City)
	assert.Equal(t, "QC", client.Address.Province)

	business := &Business{Name: "Acme", Address: &Address{Province: "on", Country: "Atlantis", ZipCode: "k1a 0b1"}}
	require.NoError(t, business.Bind(nil))
	assert.Equal(t, "Atlantis", business.Address.Country)
	assert.Equal(t, "K1A 0B1", business.Address.ZipCode)
	assert.Equal(t, "ON", business.Province())

	noAddress := &Client{Name: "Sans adresse"}
	require.NoError(t, noAddress.Bind(nil))
	assert.Nil(t, noAddress.Address)
}
