// Package validate binds request DTOs and turns validator tag failures into
// the field-error list the 400 envelope carries.
package validate

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report wire names (json tags), not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
}

// Bind decodes the JSON body into dst and runs its validation tags. Unknown
// body fields are ignored, matching the original API's tolerance.
func Bind(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return Errs{{Field: "body", Msg: "malformed json"}}
	}
	return Struct(dst)
}

func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return Errs{{Field: "body", Msg: "invalid"}}
	}
	out := make(Errs, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, ErrField{Field: fieldName(fe), Msg: tagMessage(fe)})
	}
	return out
}

func fieldName(fe validator.FieldError) string { return fe.Field() }

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "invalid"
	}
}
