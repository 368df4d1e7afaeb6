package forms

import (
	"reflect"
	"slices"
	"strings"
	"time"

	"homerelief/pkg/types"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Register adds the custom tags and cross-field rules used by the public
// submission forms.
func Register(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"notblank":       notBlank,
		"nonempty":       nonEmpty,
		"essential_need": essentialNeed,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	v.RegisterStructValidation(damageReportRules, types.DamageReportForm{})
	v.RegisterStructValidation(volunteerOfferRules, types.VolunteerOfferForm{})

	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func nonEmpty(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fl.Field().Len() > 0
	}
	return false
}

func essentialNeed(fl validator.FieldLevel) bool {
	return slices.Contains(types.EssentialNeeds, strings.TrimSpace(fl.Field().String()))
}

// Coordinates are optional but only meaningful as a pair.
func damageReportRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(types.DamageReportForm)

	hasLat := strings.TrimSpace(f.Latitude) != ""
	hasLng := strings.TrimSpace(f.Longitude) != ""
	if hasLat != hasLng {
		sl.ReportError(f.Latitude, "latitude", "Latitude", "latlng_pair", "")
	}
}

func volunteerOfferRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(types.VolunteerOfferForm)

	start, err := time.Parse(dateLayout, strings.TrimSpace(f.AvailabilityStart))
	if err != nil {
		return
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(f.AvailabilityEnd))
	if err != nil {
		return
	}
	if start.After(end) {
		sl.ReportError(f.AvailabilityEnd, "availability_end", "AvailabilityEnd", "daterange", "")
	}
}
