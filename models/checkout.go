package models

type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// Address is a saved delivery address. Type doubles as the translation key
// of its label.
type Address struct {
	ID          string      `json:"id"`
	Type        AddressType `json:"type"`
	Name        string      `json:"name"`
	Line        string      `json:"address"`
	IsDefault   bool        `json:"is_default"`
	Coordinates Coordinates `json:"coordinates"`
}

type PaymentMethod struct {
	ID          string `json:"id"`
	NameKey     string `json:"name_key"`
	Description string `json:"description"`
}
