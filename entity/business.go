package entity

import (
	"net/http"
	"strings"

	"factureme/lib/validate"
)

type TaxType string

const (
	TaxTVS TaxType = "TVS"
	TaxTVQ TaxType = "TVQ"
	TaxTVP TaxType = "TVP"
	TaxTVH TaxType = "TVH"
)

// TaxTypes in the order tax lines are printed
func TaxTypes() []TaxType {
	return []TaxType{TaxTVS, TaxTVQ, TaxTVP, TaxTVH}
}

// Business issues company invoices. A nil registration number means the
// business does not collect that tax.
type Business struct {
	IdBusiness int64    `json:"idBusiness" bson:"idBusiness"`
	IdUser     int64    `json:"idUser" bson:"idUser"`
	Name       string   `json:"name" bson:"name" validate:"required,max=128"`
	Address    *Address `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty"`
	TvsNumber  *string  `json:"tvsNumber,omitempty" bson:"tvsNumber"`
	TvqNumber  *string  `json:"tvqNumber,omitempty" bson:"tvqNumber"`
	TvpNumber  *string  `json:"tvpNumber,omitempty" bson:"tvpNumber"`
	TvhNumber  *string  `json:"tvhNumber,omitempty" bson:"tvhNumber"`
}

func (b *Business) Bind(_ *http.Request) error {
	b.TvsNumber = blankToNil(b.TvsNumber)
	b.TvqNumber = blankToNil(b.TvqNumber)
	b.TvpNumber = blankToNil(b.TvpNumber)
	b.TvhNumber = blankToNil(b.TvhNumber)
	b.Address.normalize()
	return validate.Struct(b)
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func (b *Business) RegistrationNumber(taxType TaxType) *string {
	switch taxType {
	case TaxTVS:
		return b.TvsNumber
	case TaxTVQ:
		return b.TvqNumber
	case TaxTVP:
		return b.TvpNumber
	case TaxTVH:
		return b.TvhNumber
	}
	return nil
}

func (b *Business) Province() string {
	return b.Address.ProvinceCode()
}
