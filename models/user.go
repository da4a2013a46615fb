package models

import (
	"time"
)

// ClientRole mirrors the numeric role the signup and login payloads carry
type ClientRole int

const (
	RoleClient ClientRole = 0
)

// Client is a customer account held by the Delivrya API
type Client struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Prenom       string     `json:"prenom" gorm:"not null"`
	Nom          string     `json:"nom" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Telephone    string     `json:"telephone"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Ville        string     `json:"ville"`
	Adresse      string     `json:"adresse"`
	Role         ClientRole `json:"role" gorm:"not null;default:0"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName joins first and last name the way the profile screen shows them
func (c Client) FullName() string {
	if c.Nom == "" {
		return c.Prenom
	}
	return c.Prenom + " " + c.Nom
}
