package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Numeric rules (gte, gt) compare decimals as float64.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// validateStruct runs the struct tag rules and converts the first failure into
// a ValidationError.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return newValidationError(trimNamespace(fe.Namespace()), fe.Value(), msg)
	}
	return fmt.Errorf("validate: %w", err)
}

// trimNamespace drops the leading struct name from "Invoice.items[0].quantity".
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validateInvoice(inv Invoice) error {
	if len(inv.Items) == 0 {
		return newValidationError("items", len(inv.Items), "invoice needs at least one line")
	}
	return validateStruct(inv)
}

func validateVoucher(v Voucher) error {
	return validateStruct(v)
}

func validatePerson(p Person) error {
	return validateStruct(p)
}

func validateInventoryItem(item InventoryItem) error {
	return validateStruct(item)
}

// ValidateSettings checks the settings fields that carry rules.
func ValidateSettings(s Settings) error {
	return validateStruct(s)
}
