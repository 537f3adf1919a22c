package entity

import (
	"net/http"
	"time"

	"factureme/lib/clock"
)

// FactureType tells which kinds of lines an invoice holds
type FactureType string

const (
	FactureUnitary FactureType = "U"
	FactureHourly  FactureType = "T"
	FactureMixed   FactureType = "P"
)

// TypeFor derives the invoice type from the line kinds present,
// empty when there are no lines at all
func TypeFor(hasProducts, hasHourly bool) FactureType {
	switch {
	case hasProducts && hasHourly:
		return FactureMixed
	case hasHourly:
		return FactureHourly
	case hasProducts:
		return FactureUnitary
	}
	return ""
}

type Facture struct {
	IdFacture         int64       `json:"idFacture" bson:"idFacture"`
	IdUser            int64       `json:"idUser" bson:"idUser"`
	DateFacture       time.Time   `json:"dateFacture" bson:"dateFacture"`
	TypeFacture       FactureType `json:"typeFacture" bson:"typeFacture"`
	FactureNumber     string      `json:"factureNumber" bson:"factureNumber"`
	IncludesTaxes     bool        `json:"includesTaxes" bson:"includesTaxes"`
	IsActive          bool        `json:"isActive" bson:"isActive"`
	IsPaid            bool        `json:"isPaid" bson:"isPaid"`
	IsBusinessInvoice bool        `json:"isBusinessInvoice" bson:"isBusinessInvoice"`
	IdClient          int64       `json:"idClient" bson:"idClient"`
	IdBusiness        *int64      `json:"idBusiness,omitempty" bson:"idBusiness,omitempty"`
}

// ObjetFacture is the product line snapshot saved with an invoice
type ObjetFacture struct {
	IdFacture    int64   `json:"idFacture" bson:"idFacture"`
	IdColumn     int     `json:"idColumn" bson:"idColumn"`
	IdObjet      int64   `json:"idObjet" bson:"idObjet"`
	ProductName  string  `json:"productName" bson:"productName"`
	Description  string  `json:"description" bson:"description"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit" bson:"pricePerUnit"`
	ProductPhoto string  `json:"productPhoto,omitempty" bson:"productPhoto,omitempty"`
}

func (o *ObjetFacture) Total() float64 {
	return clock.Round2(float64(o.Quantity) * o.PricePerUnit)
}

// FactureHoraire is the hourly line snapshot saved with an invoice
type FactureHoraire struct {
	IdFacture          int64   `json:"idFacture" bson:"idFacture"`
	IdColumn           int     `json:"idColumn" bson:"idColumn"`
	IdTauxHoraire      int64   `json:"idTauxHoraire" bson:"idTauxHoraire"`
	WorkPosition       string  `json:"workPosition" bson:"workPosition"`
	HourlyRate         float64 `json:"hourlyRate" bson:"hourlyRate"`
	StartTime          string  `json:"startTime" bson:"startTime"`
	EndTime            string  `json:"endTime" bson:"endTime"`
	LunchTimeInMinutes float64 `json:"lunchTimeInMinutes" bson:"lunchTimeInMinutes"`
}

func (h *FactureHoraire) WorkedHours() float64 {
	return clock.WorkedHours(h.StartTime, h.EndTime, h.LunchTimeInMinutes)
}

func (h *FactureHoraire) Total() float64 {
	return clock.TotalByWorkedHours(h.HourlyRate, h.StartTime, h.EndTime, h.LunchTimeInMinutes)
}

// Tax is one computed tax line of an invoice
type Tax struct {
	Name   TaxType `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// FactureFilter narrows the invoice history of a user; nil fields match everything
type FactureFilter struct {
	From     *time.Time
	To       *time.Time
	IsPaid   *bool
	IsActive *bool
}

// PaidRequest toggles the paid flag of an invoice
type PaidRequest struct {
	Paid bool `json:"paid"`
}

func (p *PaidRequest) Bind(_ *http.Request) error {
	return nil
}

// Stats is the admin overview
type Stats struct {
	Users    int64 `json:"users"`
	Factures int64 `json:"factures"`
	Paid     int64 `json:"paid"`
	Archived int64 `json:"archived"`
}
