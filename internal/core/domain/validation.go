package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("sweet_category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == RoleUser || role == RoleAdmin
	})
	return v
}

// SweetDraft is the unvalidated shape of a catalog item. Price is required,
// Quantity defaults to zero when absent.
type SweetDraft struct {
	Name        string   `json:"name"     validate:"required"`
	Category    Category `json:"category" validate:"required,sweet_category"`
	Price       *float64 `json:"price"    validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Description string   `json:"description"`
}

// SweetPatch holds the fields an update may change. Nil means "keep".
type SweetPatch struct {
	Name        *string
	Category    *Category
	Price       *float64
	Quantity    *int
	Description *string
}

var sweetMessages = map[string]string{
	"name.required":           "Please provide a sweet name",
	"category.required":       "Please provide a category",
	"category.sweet_category": "%v is not a valid category",
	"price.required":          "Please provide a price",
	"price.gte":               "Price cannot be negative",
	"quantity.gte":            "Quantity cannot be negative",
}

// NewSweet trims and validates a draft. It returns either a Sweet that
// satisfies every model invariant or a *ValidationError listing all
// violations; out-of-range values are never clamped.
func NewSweet(d SweetDraft) (Sweet, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)

	if err := validate.Struct(d); err != nil {
		return Sweet{}, translate(err, sweetMessages)
	}

	s := Sweet{
		Name:        d.Name,
		Category:    d.Category,
		Price:       *d.Price,
		Description: d.Description,
	}
	if d.Quantity != nil {
		s.Quantity = *d.Quantity
	}
	return s, nil
}

// ApplyPatch merges p into s and validates the merged record. Identity and
// timestamps are carried over from s.
func ApplyPatch(s Sweet, p SweetPatch) (Sweet, error) {
	price, quantity := s.Price, s.Quantity
	d := SweetDraft{
		Name:        s.Name,
		Category:    s.Category,
		Price:       &price,
		Quantity:    &quantity,
		Description: s.Description,
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Price != nil {
		d.Price = p.Price
	}
	if p.Quantity != nil {
		d.Quantity = p.Quantity
	}
	if p.Description != nil {
		d.Description = *p.Description
	}

	merged, err := NewSweet(d)
	if err != nil {
		return Sweet{}, err
	}
	merged.ID = s.ID
	merged.CreatedAt = s.CreatedAt
	merged.UpdatedAt = s.UpdatedAt
	return merged, nil
}

// Narrow returns a patch holding only the fields p sets, with the values
// taken from merged (trimmed and validated by ApplyPatch). Stores write
// exactly these fields so an edit never overwrites stock it did not touch.
func (p SweetPatch) Narrow(merged Sweet) SweetPatch {
	var out SweetPatch
	if p.Name != nil {
		out.Name = &merged.Name
	}
	if p.Category != nil {
		out.Category = &merged.Category
	}
	if p.Price != nil {
		out.Price = &merged.Price
	}
	if p.Quantity != nil {
		out.Quantity = &merged.Quantity
	}
	if p.Description != nil {
		out.Description = &merged.Description
	}
	return out
}

// Registration is the unvalidated input of a sign-up.
type Registration struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"user_role"`
}

var registrationMessages = map[string]string{
	"name.required":     "Please provide a name",
	"email.required":    "Please provide an email",
	"email.email":       "Please provide a valid email",
	"password.required": "Please provide a password",
	"password.min":      "Password must be at least 6 characters",
	"role.user_role":    "%v is not a valid role",
}

// ValidateRegistration trims the input, defaults the role to RoleUser and
// checks it. The password is left untouched.
func ValidateRegistration(r Registration) (Registration, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Role == "" {
		r.Role = RoleUser
	}
	if err := validate.Struct(r); err != nil {
		return Registration{}, translate(err, registrationMessages)
	}
	return r, nil
}

func translate(err error, messages map[string]string) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make([]FieldViolation, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldViolation{Field: fe.Field(), Message: fieldMessage(fe, messages)})
	}
	return NewValidationError(out...)
}

func fieldMessage(fe validator.FieldError, messages map[string]string) string {
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	if strings.Contains(msg, "%v") {
		return fmt.Sprintf(msg, fe.Value())
	}
	return msg
}
