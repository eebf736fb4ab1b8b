package models

import "time"

const (
	CustomerActive   = "Active"
	CustomerInactive = "Inactive"
)

var CustomerStatusOptions = []string{CustomerActive, CustomerInactive}

// Customer is an account managed from the customer screen. Passwords are
// write-only: they pass through create and reset-password flows but are
// never carried on the record. Username uniqueness is not enforced.
type Customer struct {
	ID                string  `json:"id" gorm:"primaryKey;size:36"`
	Name              string  `json:"name" gorm:"not null;index"`
	Email             string  `json:"email" gorm:"not null;index"`
	Username          string  `json:"username" gorm:"not null;index"`
	Status            string  `json:"status" gorm:"not null;default:'Active'"`
	DateJoined        string  `json:"dateJoined" gorm:"size:10;not null"`
	LastLogin         *string `json:"lastLogin" gorm:"size:10"`
	LastPasswordReset *string `json:"lastPasswordReset,omitempty" gorm:"size:10"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
