package entity

import "factureme/lib/clock"

type HourlyLine struct {
	FactureHoraire
	WorkedHours float64 `json:"workedHours"`
	Total       float64 `json:"total"`
}

type ProductLine struct {
	ObjetFacture
	Total float64 `json:"total"`
}

// FactureDetails is an invoice with its lines and computed amounts
type FactureDetails struct {
	Facture  *Facture      `json:"facture"`
	Client   *Client       `json:"client,omitempty"`
	Business *Business     `json:"business,omitempty"`
	Products []ProductLine `json:"products"`
	Hourly   []HourlyLine  `json:"hourly"`
	Subtotal float64       `json:"subtotal"`
	Taxes    []*Tax        `json:"taxes"`
	Total    float64       `json:"total"`
}

// NewFactureDetails computes line totals and the subtotal, taxes are added by the caller
func NewFactureDetails(f *Facture, objets []*ObjetFacture, horaires []*FactureHoraire) *FactureDetails {
	d := &FactureDetails{
		Facture:  f,
		Products: make([]ProductLine, 0, len(objets)),
		Hourly:   make([]HourlyLine, 0, len(horaires)),
		Taxes:    make([]*Tax, 0),
	}
	var subtotal float64
	for _, o := range objets {
		line := ProductLine{ObjetFacture: *o, Total: o.Total()}
		subtotal += line.Total
		d.Products = append(d.Products, line)
	}
	for _, h := range horaires {
		line := HourlyLine{FactureHoraire: *h, WorkedHours: h.WorkedHours(), Total: h.Total()}
		subtotal += line.Total
		d.Hourly = append(d.Hourly, line)
	}
	d.Subtotal = clock.Round2(subtotal)
	d.Total = d.Subtotal
	return d
}

// SetTaxes attaches tax lines and recomputes the total
func (d *FactureDetails) SetTaxes(taxes []*Tax) {
	if taxes == nil {
		taxes = make([]*Tax, 0)
	}
	d.Taxes = taxes
	total := d.Subtotal
	for _, t := range taxes {
		total += t.Amount
	}
	d.Total = clock.Round2(total)
}

// DayGroup is one day of the calendar view
type DayGroup struct {
	Day      int        `json:"day"`
	Factures []*Facture `json:"factures"`
}
