package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator plugs go-playground/validator into echo. Field names in errors are the JSON names.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// Binder decodes JSON bodies into per-endpoint structs, rejecting unknown fields.
type Binder struct{}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Corpo da requisição ausente")
	}
	if ctype := req.Header.Get(echo.HeaderContentType); !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return echo.ErrUnsupportedMediaType
	}

	decoder := json.NewDecoder(req.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(i); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Campo inválido: %s", typeErr.Field)).SetInternal(err)
		}
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Campo desconhecido: %s", strings.Trim(field, `"`))).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "JSON inválido").SetInternal(err)
	}
	return nil
}

// bind decodes and validates the request body in one step.
func bind(c echo.Context, params interface{}) error {
	if err := c.Bind(params); err != nil {
		return err
	}
	return c.Validate(params)
}
