package checkout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

const (
	msgMissingFields  = "Please fill in all required fields"
	msgMissingPayment = "Please fill in all payment details"
)

// States lists the shipping states the storefront delivers to.
var States = []string{
	"andhra-pradesh",
	"delhi",
	"gujarat",
	"karnataka",
	"kerala",
	"maharashtra",
	"punjab",
	"rajasthan",
	"tamil-nadu",
	"uttar-pradesh",
	"west-bengal",
}

var paymentFields = map[string]struct{}{
	"cardNumber": {},
	"cardExpiry": {},
	"cardCvv":    {},
}

// Form is the shipping and payment information collected at checkout.
type Form struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Apartment  string `json:"apartment"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required,state"`
	PostalCode string `json:"postalCode" validate:"required"`

	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required,payment_method"`
	CardNumber    string              `json:"cardNumber" validate:"required_if=PaymentMethod credit-card"`
	CardExpiry    string              `json:"cardExpiry" validate:"required_if=PaymentMethod credit-card"`
	CardCVV       string              `json:"cardCvv" validate:"required_if=PaymentMethod credit-card"`

	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod" validate:"required,delivery_method"`
	Notes          string               `json:"notes"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "state", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, s := range States {
			if s == value {
				return true
			}
		}
		return false
	})
	mustRegister(v, "payment_method", func(fl validator.FieldLevel) bool {
		return enums.PaymentMethod(fl.Field().String()).IsValid()
	})
	mustRegister(v, "delivery_method", func(fl validator.FieldLevel) bool {
		return enums.DeliveryMethod(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Normalized trims every field and applies the credit-card and standard-delivery defaults.
func (f Form) Normalized() Form {
	out := Form{
		FirstName:      strings.TrimSpace(f.FirstName),
		LastName:       strings.TrimSpace(f.LastName),
		Email:          strings.TrimSpace(f.Email),
		Phone:          strings.TrimSpace(f.Phone),
		Address:        strings.TrimSpace(f.Address),
		Apartment:      strings.TrimSpace(f.Apartment),
		City:           strings.TrimSpace(f.City),
		State:          strings.ToLower(strings.TrimSpace(f.State)),
		PostalCode:     strings.TrimSpace(f.PostalCode),
		PaymentMethod:  enums.PaymentMethod(strings.TrimSpace(string(f.PaymentMethod))),
		CardNumber:     strings.ReplaceAll(strings.TrimSpace(f.CardNumber), " ", ""),
		CardExpiry:     strings.TrimSpace(f.CardExpiry),
		CardCVV:        strings.TrimSpace(f.CardCVV),
		DeliveryMethod: enums.DeliveryMethod(strings.TrimSpace(string(f.DeliveryMethod))),
		Notes:          strings.TrimSpace(f.Notes),
	}
	if out.PaymentMethod == "" {
		out.PaymentMethod = enums.PaymentMethodCard
	}
	if out.DeliveryMethod == "" {
		out.DeliveryMethod = enums.DeliveryStandard
	}
	if !out.PaymentMethod.RequiresCard() {
		out.CardNumber, out.CardExpiry, out.CardCVV = "", "", ""
	}
	return out
}

// Validate checks the normalized form. Shipping problems are reported before
// payment problems; details map each offending field to a message.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msgMissingFields)
	}

	details := map[string]string{}
	paymentOnly := true
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = validationMessage(fieldErr)
		if _, isPayment := paymentFields[fieldErr.Field()]; !isPayment {
			paymentOnly = false
		}
	}
	message := msgMissingFields
	if paymentOnly {
		message = msgMissingPayment
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "state":
		return "is not a state we deliver to"
	case "payment_method":
		return "must be one of credit-card, upi, cod"
	case "delivery_method":
		return "must be one of standard, express"
	}
	return "is invalid"
}
