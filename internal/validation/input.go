package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/models"
)

// Credentials is what a sign-in form submits.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Registration adds a display name to Credentials.
type Registration struct {
	Name     string `validate:"required,max=80"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// PactInput is the caller-supplied part of a new pact.
type PactInput struct {
	Title             string `validate:"required,max=120"`
	IdentityStatement string `validate:"required"`
	StartDate         string `validate:"required,iso_date"`
	EndDate           string `validate:"omitempty,iso_date"`
	Status            string `validate:"required,pact_status"`
}

var fieldLabels = map[string]string{
	"Email":             "Email",
	"Password":          "Password",
	"Name":              "Name",
	"Title":             "Title",
	"IdentityStatement": "Identity statement",
	"StartDate":         "Start date",
	"EndDate":           "End date",
	"Status":            "Status",
}

// NewInputValidator returns a validator with the pact-specific tags registered.
func NewInputValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom tags on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("iso_date", isoDate)
	_ = v.RegisterValidation("pact_status", pactStatus)
}

func isoDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.Parse(constants.DateFormat, val)
	return err == nil
}

func pactStatus(fl validator.FieldLevel) bool {
	return models.ValidStatus(models.PactStatus(fl.Field().String()))
}

// FormatValidationErrors converts validator errors to user-facing messages.
func FormatValidationErrors(err error) []string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FirstMessage returns the first user-facing message for err, or "".
func FirstMessage(err error) string {
	if err == nil {
		return ""
	}
	msgs := FormatValidationErrors(err)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

func formatSingleError(e validator.FieldError) string {
	label, ok := fieldLabels[e.Field()]
	if !ok {
		label = e.Field()
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "iso_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label)
	case "pact_status":
		return fmt.Sprintf("%s must be one of active, completed, paused, abandoned", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
