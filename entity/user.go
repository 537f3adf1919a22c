package entity

import (
	"net/http"
	"time"

	"factureme/lib/validate"
)

// User is an account owning clients, catalog entries and invoices.
// Requests authenticate with the bearer Token issued at registration.
type User struct {
	IdUser       int64     `json:"idUser" bson:"idUser"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=64"`
	Name         string    `json:"name" bson:"name" validate:"omitempty,max=128"`
	Email        string    `json:"email" bson:"email" validate:"omitempty,email"`
	Token        string    `json:"token,omitempty" bson:"token"`
	Language     string    `json:"language" bson:"language" validate:"omitempty,oneof=fr en"`
	IsAdmin      bool      `json:"isAdmin" bson:"isAdmin"`
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}

func (u *User) Bind(_ *http.Request) error {
	// server-assigned
	u.IdUser = 0
	u.Token = ""
	u.IsAdmin = false
	return validate.Struct(u)
}
