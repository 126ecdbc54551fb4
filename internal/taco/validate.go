package taco

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form messages, keyed by form field name.
var fieldMessages = map[string]string{
	"name":           "Name must be at least 5 characters long",
	"ingredients":    "You must choose at least 1 ingredient",
	"deliveryName":   "Delivery name is required",
	"deliveryStreet": "Street is required",
	"deliveryCity":   "City is required",
	"deliveryState":  "State is required",
	"deliveryZip":    "Zip code is required",
	"ccNumber":       "Not a valid credit card number",
	"ccExpiration":   "Must be formatted MM/YY",
	"ccCVV":          "Invalid CVV",
}

// Tag-specific messages take precedence over fieldMessages.
var tagMessages = map[string]string{
	"ccnotexpired": "Card has expired",
}

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([2-9][0-9])$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3}$`)
)

// Option configures a Validator.
type Option func(*Validator)

// WithExpiryCheck rejects cards whose expiration month has ended, measured
// against now.
func WithExpiryCheck(now func() time.Time) Option {
	return func(v *Validator) {
		v.enforceExpiry = true
		v.now = now
	}
}

// Validator checks tacos and order delivery details.
type Validator struct {
	validate      *validator.Validate
	enforceExpiry bool
	now           func() time.Time
}

// NewValidator creates a Validator with the Taco Cloud form rules registered.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("ccexpiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("ccnotexpired", v.notExpired)
	_ = validate.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})

	v.validate = validate
	return v
}

// ValidateTaco returns a *ValidationError when t breaks a design rule.
func (v *Validator) ValidateTaco(t Taco) error {
	return v.check(t)
}

// ValidateDelivery returns a *ValidationError when d breaks an order rule.
func (v *Validator) ValidateDelivery(d Delivery) error {
	return v.check(d)
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = fieldMessages[fe.Field()]
		}
		if msg == "" {
			msg = fe.Error()
		}
		verr.add(fe.Field(), msg)
	}
	return verr
}

// notExpired passes when enforcement is off or the card is still valid for
// the current month. Malformed values are left to ccexpiry.
func (v *Validator) notExpired(fl validator.FieldLevel) bool {
	if !v.enforceExpiry {
		return true
	}
	m := expiryPattern.FindStringSubmatch(fl.Field().String())
	if m == nil {
		return true
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	endOfValidity := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return v.now().UTC().Before(endOfValidity)
}
