package entity

import (
	"net/http"

	"factureme/lib/validate"
)

// Objet is a unit-priced catalog product
type Objet struct {
	IdObjet      int64   `json:"idObjet" bson:"idObjet"`
	IdUser       int64   `json:"idUser" bson:"idUser"`
	ProductName  string  `json:"productName" bson:"productName" validate:"required,max=128"`
	Description  string  `json:"description" bson:"description" validate:"max=1024"`
	Price        float64 `json:"price" bson:"price" validate:"gte=0"`
	ProductPhoto string  `json:"productPhoto,omitempty" bson:"productPhoto,omitempty" validate:"omitempty,url"`
}

func (o *Objet) Bind(_ *http.Request) error {
	return validate.Struct(o)
}

// TauxHoraire is an hourly rate for a work position
type TauxHoraire struct {
	IdTauxHoraire int64   `json:"idTauxHoraire" bson:"idTauxHoraire"`
	IdUser        int64   `json:"idUser" bson:"idUser"`
	ClientName    string  `json:"clientName" bson:"clientName" validate:"max=128"`
	WorkPosition  string  `json:"workPosition" bson:"workPosition" validate:"required,max=128"`
	HourlyRate    float64 `json:"hourlyRate" bson:"hourlyRate" validate:"gte=0"`
}

func (t *TauxHoraire) Bind(_ *http.Request) error {
	return validate.Struct(t)
}
