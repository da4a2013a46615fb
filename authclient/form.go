package authclient

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SignupForm is the body of POST /api/clients
type SignupForm struct {
	Prenom     string `json:"prenom" validate:"required"`
	Nom        string `json:"nom" validate:"required"`
	Email      string `json:"email" validate:"required,loose_email"`
	Telephone  string `json:"telephone" validate:"required"`
	MotDePasse string `json:"motDePasse" validate:"required"`
	Ville      string `json:"ville" validate:"required"`
	Adresse    string `json:"adresse" validate:"required"`
	Role       int    `json:"role"`
}

var looseEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var messages = map[string]map[string]string{
	"prenom":     {"required": "Le prénom est obligatoire."},
	"nom":        {"required": "Le nom est obligatoire."},
	"email":      {"required": "L'email est obligatoire.", "loose_email": "Format de l'email invalide."},
	"telephone":  {"required": "Le numéro de téléphone est obligatoire."},
	"motDePasse": {"required": "Le mot de passe est obligatoire."},
	"ville":      {"required": "La ville est obligatoire."},
	"adresse":    {"required": "L'adresse est obligatoire."},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks every field and reports one message per invalid field
func (c *Client) Validate(form SignupForm) FieldErrors {
	err := c.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}
	return out
}
