package authclient

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("Identifiants invalides")
	ErrSignupFailed       = errors.New("Inscription échouée")
	ErrMalformedResponse  = errors.New("malformed server response")
)

const (
	defaultEmailTaken = "Cet email est déjà utilisé."
	tokenNotSaved     = "Le token n'a pas pu être enregistré localement."
)

// DuplicateEmailError is returned when the email already has an account. It
// is shown under the email field.
type DuplicateEmailError struct {
	Message string
}

func (e *DuplicateEmailError) Error() string { return e.Message }

// FieldErrors maps a form field (its JSON name) to its message. Fields
// without errors are absent.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}
