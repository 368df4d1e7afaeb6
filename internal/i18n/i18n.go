// Package i18n holds the UI catalog for English, Sinhala and Tamil and the
// translated form validator.
package i18n

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"homerelief/internal"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/si"
	"github.com/go-playground/locales/ta"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const DefaultLang = "en"

var Supported = []string{"en", "si", "ta"}

func IsSupported(lang string) bool {
	for _, l := range Supported {
		if l == lang {
			return true
		}
	}
	return false
}

type Bundle struct {
	uni      *ut.UniversalTranslator
	validate *validator.Validate
}

func New() (*Bundle, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, si.New(), ta.New())

	b := &Bundle{
		uni:      uni,
		validate: validator.New(),
	}

	for lang, messages := range catalog {
		trans, err := b.translator(lang)
		if err != nil {
			return nil, err
		}
		for key, text := range messages {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s translation %q: %w", lang, key, err)
			}
		}
	}

	b.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enTrans, err := b.translator("en")
	if err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(b.validate, enTrans); err != nil {
		return nil, fmt.Errorf("register english validation messages: %w", err)
	}

	for lang, messages := range validationCatalog {
		for tag, text := range messages {
			if err := b.RegisterMessage(tag, lang, text); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

func (b *Bundle) translator(lang string) (ut.Translator, error) {
	trans, found := b.uni.GetTranslator(lang)
	if !found {
		return nil, fmt.Errorf("no translator for %q", lang)
	}
	return trans, nil
}

// Translator returns the translator for lang, falling back to English.
func (b *Bundle) Translator(lang string) ut.Translator {
	trans, found := b.uni.GetTranslator(lang)
	if !found {
		trans, _ = b.uni.GetTranslator(DefaultLang)
	}
	return trans
}

// T translates key with positional params. Missing keys fall back to the
// English text and then to the key itself.
func (b *Bundle) T(lang, key string, params ...string) string {
	if text, err := b.Translator(lang).T(key, params...); err == nil {
		return text
	}
	if lang != DefaultLang {
		return b.T(DefaultLang, key, params...)
	}
	return key
}

func (b *Bundle) Validator() *validator.Validate {
	return b.validate
}

// RegisterMessage sets the message shown for a failing validation tag in one
// language. The text may use {0} for the field name and {1} for the tag
// parameter.
func (b *Bundle) RegisterMessage(tag, lang, text string) error {
	trans, err := b.translator(lang)
	if err != nil {
		return err
	}

	register := func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}

	translate := func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(fe.Tag(), b.FieldLabel(t.Locale(), fe.Field()), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return msg
	}

	if err := b.validate.RegisterTranslation(tag, trans, register, translate); err != nil {
		return fmt.Errorf("register %s message for %q: %w", lang, tag, err)
	}
	return nil
}

// FieldLabel returns the translated label of a form field, or the field name.
// Element indexes such as skills[0] are ignored.
func (b *Bundle) FieldLabel(lang, field string) string {
	field = baseField(field)
	key := "field." + field
	if text := b.T(lang, key); text != key {
		return text
	}
	return field
}

func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

// Validate runs struct validation and returns translated messages keyed by
// form field name. A nil map means the value is valid.
func (b *Bundle) Validate(lang string, v any) (map[string]string, error) {
	err := b.validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	trans := b.Translator(lang)
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := baseField(fe.Field())
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = fe.Translate(trans)
	}
	return out, nil
}

// Negotiate picks the request language from the language cookie, then
// Accept-Language, then the default.
func Negotiate(r *http.Request) string {
	if c, err := r.Cookie(internal.COOKIE_LANG_NAME); err == nil && IsSupported(c.Value) {
		return c.Value
	}

	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if IsSupported(base) {
			return base
		}
	}

	return DefaultLang
}
