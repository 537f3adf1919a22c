package entity

import (
	"net/http"

	"factureme/lib/validate"
)

type Client struct {
	IdClient int64    `json:"idClient" bson:"idClient"`
	IdUser   int64    `json:"idUser" bson:"idUser"`
	Name     string   `json:"name" bson:"name" validate:"required,max=128"`
	Email    string   `json:"email" bson:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone" bson:"phone"`
	Address  *Address `json:"address,omitempty" bson:"address,omitempty"`
}

func (c *Client) Bind(_ *http.Request) error {
	c.Address.normalize()
	return validate.Struct(c)
}
