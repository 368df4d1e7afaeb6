// Package forms decodes, validates and converts the public submission forms
// into records.
package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homerelief/internal/divisions"
	"homerelief/internal/i18n"
	"homerelief/internal/utils"
	"homerelief/pkg/types"

	"github.com/go-playground/form/v4"
)

var decoder = form.NewDecoder()

// Errors maps form field names to translated messages.
type Errors map[string]string

type Processor struct {
	bundle    *i18n.Bundle
	divisions *divisions.Catalog
}

func NewProcessor(bundle *i18n.Bundle, catalog *divisions.Catalog) (*Processor, error) {
	if err := Register(bundle.Validator()); err != nil {
		return nil, err
	}
	return &Processor{bundle: bundle, divisions: catalog}, nil
}

// decode fills dst from values and validates it. Field errors are returned
// as Errors; only unexpected failures produce an error.
func (p *Processor) decode(lang string, dst any, values url.Values) (Errors, error) {
	errs := Errors{}

	if err := decoder.Decode(dst, values); err != nil {
		var derrs form.DecodeErrors
		if !errors.As(err, &derrs) {
			return nil, err
		}
		for field := range derrs {
			errs[field] = p.bundle.T(lang, "form.invalid", p.bundle.FieldLabel(lang, field))
		}
	}

	verrs, err := p.bundle.Validate(lang, dst)
	if err != nil {
		return nil, err
	}
	for field, msg := range verrs {
		if _, exists := errs[field]; !exists {
			errs[field] = msg
		}
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

func (p *Processor) DamageReport(lang string, values url.Values) (*types.DamageReportForm, Errors, error) {
	f := new(types.DamageReportForm)
	errs, err := p.decode(lang, f, values)
	return f, errs, err
}

func (p *Processor) DonationOffer(lang string, values url.Values) (*types.DonationOfferForm, Errors, error) {
	f := new(types.DonationOfferForm)
	errs, err := p.decode(lang, f, values)
	return f, errs, err
}

func (p *Processor) VolunteerOffer(lang string, values url.Values) (*types.VolunteerOfferForm, Errors, error) {
	f := new(types.VolunteerOfferForm)
	errs, err := p.decode(lang, f, values)
	return f, errs, err
}

// trimmed returns a copy of values with the named fields trimmed.
func trimmed(values url.Values, fields ...string) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, field := range fields {
		if _, ok := values[field]; ok {
			out.Set(field, strings.TrimSpace(values.Get(field)))
		}
	}
	return out
}

// Register decodes the sign up form. Credential errors use the auth
// messages rather than the generic validator text.
func (p *Processor) Register(lang string, values url.Values) (*types.RegisterForm, Errors, error) {
	f := new(types.RegisterForm)
	errs, err := p.decode(lang, f, trimmed(values, "email"))
	if err != nil {
		return nil, nil, err
	}

	overrides := map[string]string{
		"email":            "auth.email_invalid",
		"password":         "auth.password_short",
		"confirm_password": "auth.password_match",
	}
	for field, key := range overrides {
		if _, failed := errs[field]; failed {
			errs[field] = p.bundle.T(lang, key)
		}
	}
	return f, errs, nil
}

func (p *Processor) ConfirmRegister(lang string, values url.Values) (*types.ConfirmRegisterForm, Errors, error) {
	f := new(types.ConfirmRegisterForm)
	errs, err := p.decode(lang, f, trimmed(values, "email", "code"))
	if err != nil {
		return nil, nil, err
	}
	if _, failed := errs["code"]; failed {
		errs["code"] = p.bundle.T(lang, "auth.code_invalid")
	}
	return f, errs, nil
}

// District returns the catalog spelling of a district, or the trimmed input
// when no district is close enough.
func (p *Processor) District(name string) string {
	if p.divisions != nil {
		if canonical, ok := p.divisions.Canonical(name); ok {
			return canonical
		}
	}
	return strings.TrimSpace(name)
}

// NewDamageReport converts a validated form. The record is unverified and
// carries no id or timestamps yet.
func (p *Processor) NewDamageReport(f *types.DamageReportForm, photoURL *string) *types.DamageReport {
	report := &types.DamageReport{
		FullName:       strings.TrimSpace(f.FullName),
		PhoneNumber:    strings.TrimSpace(f.PhoneNumber),
		District:       p.District(f.District),
		DSDivision:     strings.TrimSpace(f.DSDivision),
		GNDivision:     strings.TrimSpace(f.GNDivision),
		DamageType:     types.DamageType(f.DamageType),
		FamilyMembers:  f.FamilyMembers,
		EssentialNeeds: utils.Dedupe(f.EssentialNeeds),
		PhotoURL:       photoURL,
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(f.Latitude), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(f.Longitude), 64)
	if latErr == nil && lngErr == nil {
		report.Latitude = &lat
		report.Longitude = &lng
	}

	return report
}

func (p *Processor) NewDonationOffer(f *types.DonationOfferForm) *types.DonationOffer {
	return &types.DonationOffer{
		Name:        strings.TrimSpace(f.Name),
		Phone:       utils.StringPtrOrNil(f.Phone),
		Email:       utils.StringPtrOrNil(f.Email),
		SupportType: types.SupportType(f.SupportType),
		Description: utils.StringPtrOrNil(f.Description),
	}
}

func (p *Processor) NewVolunteerOffer(f *types.VolunteerOfferForm) *types.VolunteerOffer {
	return &types.VolunteerOffer{
		FullName:          strings.TrimSpace(f.FullName),
		PhoneNumber:       strings.TrimSpace(f.PhoneNumber),
		Skills:            utils.Dedupe(f.Skills),
		AvailabilityStart: parseDate(f.AvailabilityStart),
		AvailabilityEnd:   parseDate(f.AvailabilityEnd),
	}
}

func parseDate(s string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
