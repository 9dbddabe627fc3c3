// Package dto holds the accepted input shapes of every mutating or paginated
// operation together with pure decode-and-validate functions.
//
// Every decoder collects all field errors instead of stopping at the first.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// maxDecimalExponent bounds the base-10 exponent of any decimal input.
// Values outside it are rejected before they are rendered or compared.
const maxDecimalExponent = 64

var (
	colorPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

	minTilt = decimal.NewFromInt(-domain.MaxTilt)
	maxTilt = decimal.NewFromInt(domain.MaxTilt)

	instance *validator.Validate
	once     sync.Once
)

// engine returns the shared validator, configured on first use
func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		// Report JSON names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// decimal.Decimal is validated through its canonical string
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return decimalText(d)
			}
			return nil
		}, decimal.Decimal{})

		v.RegisterAlias("notecontent", fmt.Sprintf("min=1,max=%d", domain.MaxNoteContentLength))
		v.RegisterAlias("commentcontent", fmt.Sprintf("min=1,max=%d", domain.MaxCommentContentLength))
		v.RegisterAlias("reportreason", fmt.Sprintf("max=%d", domain.MaxReportReasonLength))
		v.RegisterAlias("pagenumber", fmt.Sprintf("gte=1,lte=%d", domain.MaxPage))
		v.RegisterAlias("pagesize", fmt.Sprintf("gte=1,lte=%d", MaxLimit))

		_ = v.RegisterValidation("notecolor", noteColor)
		_ = v.RegisterValidation("tilt", tiltRange)

		instance = v
	})
	return instance
}

func noteColor(fl validator.FieldLevel) bool {
	return colorPattern.MatchString(fl.Field().String())
}

// decimalText renders d for the tag validators. An exponent outside
// maxDecimalExponent renders as "NaN", which no numeric rule accepts.
func decimalText(d decimal.Decimal) string {
	if e := d.Exponent(); e < -maxDecimalExponent || e > maxDecimalExponent {
		return "NaN"
	}
	return d.String()
}

func tiltRange(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(minTilt) && d.LessThanOrEqual(maxTilt)
}

// validateStruct runs the struct tags and appends failures to errs,
// skipping fields that already failed to decode
func validateStruct(s interface{}, errs *ValidationErrors) {
	err := engine().Struct(s)
	if err == nil {
		return
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.Add("body", "Invalid request")
		return
	}

	for _, fe := range ve {
		field := fe.Field()
		if errs.Has(field) {
			continue
		}
		errs.Add(field, message(fe))
	}
}

// message returns a human-readable explanation of a failed tag
func message(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.ActualTag() {
	case "required":
		return "This field is required"
	case "min":
		if param == "1" {
			return "Must not be empty"
		}
		return fmt.Sprintf("Must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("Must be at most %s characters", param)
	case "gte":
		if param == "1" {
			return "Must be a positive integer"
		}
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be at most %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "notecolor":
		return "Must be a hex color such as #A1B2C3"
	case "tilt":
		return fmt.Sprintf("Must be a number between %d and %d", -domain.MaxTilt, domain.MaxTilt)
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}
