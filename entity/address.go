package entity

import (
	"strings"

	"github.com/biter777/countries"
)

type Address struct {
	Street   string `json:"street" bson:"street"`
	City     string `json:"city" bson:"city"`
	Province string `json:"province" bson:"province" validate:"omitempty,len=2"`
	ZipCode  string `json:"zipCode" bson:"zipCode"`
	Country  string `json:"country" bson:"country"`
}

// CountryCode returns the alpha-2 code of Country, empty when unknown
func (a *Address) CountryCode() string {
	if a == nil || a.Country == "" {
		return ""
	}
	if len(a.Country) == 2 {
		return strings.ToUpper(a.Country)
	}
	code := countries.ByName(a.Country).Alpha2()
	if len(code) == 2 {
		return code
	}
	return ""
}

// normalize trims the fields and stores a recognized country as its alpha-2 code,
// unrecognized names are kept as entered
func (a *Address) normalize() {
	if a == nil {
		return
	}
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.Province = strings.ToUpper(strings.TrimSpace(a.Province))
	a.ZipCode = strings.ToUpper(strings.TrimSpace(a.ZipCode))
	a.Country = strings.TrimSpace(a.Country)
	if code := a.CountryCode(); code != "" {
		a.Country = code
	}
}

// ProvinceCode is the upper-cased province, the tax tables key on it
func (a *Address) ProvinceCode() string {
	if a == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(a.Province))
}
