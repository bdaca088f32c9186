// Package product defines the inventory Product record and its field rules.
package product

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Product is a single inventory record as persisted in the store.
type Product struct {
	ID       int     `json:"id" csv:"id" validate:"gte=1"`
	Name     string  `json:"name" csv:"name" validate:"notblank"`
	Category string  `json:"category" csv:"category" validate:"notblank"`
	Quantity int     `json:"quantity" csv:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" csv:"price" validate:"gte=0"`
}

// Field identifies an editable product field.
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldQuantity Field = "quantity"
	FieldPrice    Field = "price"
)

// Reasons a field value can be rejected.
var (
	ErrEmpty       = errors.New("must not be empty")
	ErrNotANumber  = errors.New("not a number")
	ErrNegative    = errors.New("must not be negative")
	ErrInvalidData = errors.New("invalid product record")
)

// FieldError reports which field failed validation and why.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// notblank rejects whitespace-only strings, which "required" accepts
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

// Validate checks a whole record, e.g. one read back from disk.
// The first failing field is returned as a *FieldError.
func Validate(p Product) error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Name":
		return &FieldError{Field: FieldName, Err: ErrEmpty}
	case "Category":
		return &FieldError{Field: FieldCategory, Err: ErrEmpty}
	case "Quantity":
		return &FieldError{Field: FieldQuantity, Err: ErrNegative}
	case "Price":
		return &FieldError{Field: FieldPrice, Err: ErrNegative}
	default:
		return fmt.Errorf("%w: field %s failed on rule %s", ErrInvalidData, fe.Field(), fe.Tag())
	}
}

// ValidateName trims the input and rejects empty names.
func ValidateName(input string) (string, error) {
	return nonBlank(FieldName, input)
}

// ValidateCategory trims the input and rejects empty categories.
func ValidateCategory(input string) (string, error) {
	return nonBlank(FieldCategory, input)
}

func nonBlank(field Field, input string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return "", &FieldError{Field: field, Err: ErrEmpty}
	}
	return v, nil
}

// ParseQuantity parses a base-10 integer stock quantity.
func ParseQuantity(input string) (int, error) {
	q, err := ParseID(input)
	if err != nil {
		return 0, &FieldError{Field: FieldQuantity, Err: ErrNotANumber}
	}
	if q < 0 {
		return 0, &FieldError{Field: FieldQuantity, Err: ErrNegative}
	}
	return q, nil
}

// ParsePrice parses a decimal price. NaN and infinities are not numbers here.
func ParsePrice(input string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, &FieldError{Field: FieldPrice, Err: ErrNotANumber}
	}
	if p < 0 {
		return 0, &FieldError{Field: FieldPrice, Err: ErrNegative}
	}
	if p == 0 {
		p = 0 // "-0" parses to negative zero
	}
	return p, nil
}

// ParseID parses a base-10 integer typed by the user.
func ParseID(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}
