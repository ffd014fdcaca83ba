package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"speakup-analytics/internal/stats"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 16

var (
	vOnce      sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// validatorInstance returns the shared validator with English messages and json field names.
func validatorInstance() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("resolution", func(fl validator.FieldLevel) bool {
			_, err := stats.ParseResolution(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterTranslation("resolution", trans,
			func(ut ut.Translator) error {
				return ut.Add("resolution", "{0} must be one of week, month or year", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("resolution", fe.Field())
				return msg
			},
		)

		validate, translator = v, trans
	})
	return validate, translator
}

// validateStruct returns the first validation failure as a readable error.
func validateStruct(v any) error {
	val, trans := validatorInstance()
	err := val.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(verrs[0].Translate(trans))
	}
	log.Error().Err(err).Msg("Validator internal error")
	return errors.New("validation error")
}

// decodeJSON decodes a size-limited body into T, rejecting unknown fields, then validates it.
func decodeJSON[T any](r *http.Request) (T, error) {
	var dst T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, errors.New("empty body")
		}
		return dst, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return dst, errors.New("unexpected trailing data")
	}
	return dst, validateStruct(dst)
}
