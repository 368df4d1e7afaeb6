package forms_test

import (
	"net/url"
	"testing"
	"time"

	"homerelief/internal/divisions"
	"homerelief/internal/forms"
	"homerelief/internal/i18n"
	"homerelief/pkg/types"

	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) *forms.Processor {
	t.Helper()

	bundle, err := i18n.New()
	require.NoError(t, err)
	catalog, err := divisions.Default()
	require.NoError(t, err)

	p, err := forms.NewProcessor(bundle, catalog)
	require.NoError(t, err)
	return p
}

func validReport() url.Values {
	return url.Values{
		"full_name":       {"  Nimal Perera "},
		"phone_number":    {"0771234567"},
		"district":        {"colmbo"},
		"ds_division":     {"Kotte Divisional Secretariat"},
		"gn_division":     {"Nawala"},
		"damage_type":     {"severe"},
		"family_members":  {"4"},
		"essential_needs": {"Cement", "Roof sheets", "Cement"},
		"consent":         {"true"},
	}
}

func TestDamageReportValid(t *testing.T) {
	p := newProcessor(t)

	f, errs, err := p.DamageReport("en", validReport())
	require.NoError(t, err)
	require.Nil(t, errs)

	photo := "https://cdn.example/victim-photos/a.jpg"
	report := p.NewDamageReport(f, &photo)
	require.Equal(t, "Nimal Perera", report.FullName)
	require.Equal(t, "Colombo", report.District)
	require.Equal(t, types.DamageTypeSevere, report.DamageType)
	require.Equal(t, 4, report.FamilyMembers)
	require.Equal(t, []string{"Cement", "Roof sheets"}, report.EssentialNeeds)
	require.Equal(t, &photo, report.PhotoURL)
	require.False(t, report.HasLocation())
	require.False(t, report.Verified)
}

func TestDamageReportNeedsAreTrimmedBeforeDedupe(t *testing.T) {
	p := newProcessor(t)

	values := validReport()
	values["essential_needs"] = []string{" Cement", "Cement ", "Wood"}

	f, errs, err := p.DamageReport("en", values)
	require.NoError(t, err)
	require.Nil(t, errs)

	report := p.NewDamageReport(f, nil)
	require.Equal(t, []string{"Cement", "Wood"}, report.EssentialNeeds)
}

func TestDamageReportCoordinates(t *testing.T) {
	p := newProcessor(t)

	values := validReport()
	values.Set("latitude", "6.9271")
	values.Set("longitude", "79.8612")

	f, errs, err := p.DamageReport("en", values)
	require.NoError(t, err)
	require.Nil(t, errs)

	report := p.NewDamageReport(f, nil)
	require.True(t, report.HasLocation())
	require.Equal(t, "https://www.google.com/maps?q=6.9271,79.8612", report.MapURL())

	values.Del("longitude")
	_, errs, err = p.DamageReport("en", values)
	require.NoError(t, err)
	require.Equal(t, "Provide both latitude and longitude, or neither.", errs["latitude"])
}

func TestDamageReportErrors(t *testing.T) {
	p := newProcessor(t)

	values := url.Values{
		"full_name":       {"   "},
		"damage_type":     {"flooded"},
		"family_members":  {"many"},
		"essential_needs": {"Gold"},
	}

	_, errs, err := p.DamageReport("en", values)
	require.NoError(t, err)

	require.Equal(t, "Full name cannot be blank.", errs["full_name"])
	require.Equal(t, "Phone number is required.", errs["phone_number"])
	require.Equal(t, "Damage type is not a valid choice.", errs["damage_type"])
	require.Equal(t, "Family members has an invalid value.", errs["family_members"])
	require.Equal(t, "Consent is required.", errs["consent"])
	require.Equal(t, "Essential needs contains an unknown need.", errs["essential_needs"])
}

func TestDamageReportNeedsSelection(t *testing.T) {
	p := newProcessor(t)

	values := validReport()
	values.Del("essential_needs")

	_, errs, err := p.DamageReport("ta", values)
	require.NoError(t, err)
	require.Equal(t, "அத்தியாவசியத் தேவைகள் இல் குறைந்தது ஒன்றைத் தேர்ந்தெடுக்கவும்.", errs["essential_needs"])
}

func TestDonationOffer(t *testing.T) {
	p := newProcessor(t)

	f, errs, err := p.DonationOffer("en", url.Values{
		"name":         {"Lanka Hardware"},
		"email":        {"not-an-email"},
		"support_type": {"materials"},
	})
	require.NoError(t, err)
	require.Equal(t, "Email must be a valid email address.", errs["email"])

	f, errs, err = p.DonationOffer("en", url.Values{
		"name":         {"Lanka Hardware"},
		"email":        {"help@lankahardware.lk"},
		"support_type": {"materials"},
		"description":  {"  "},
	})
	require.NoError(t, err)
	require.Nil(t, errs)

	offer := p.NewDonationOffer(f)
	require.Equal(t, "help@lankahardware.lk", *offer.Email)
	require.Nil(t, offer.Phone)
	require.Nil(t, offer.Description)
	require.Equal(t, types.SupportTypeMaterials, offer.SupportType)
}

func TestVolunteerOffer(t *testing.T) {
	p := newProcessor(t)

	f, errs, err := p.VolunteerOffer("en", url.Values{
		"full_name":          {"Kumar"},
		"phone_number":       {"0711111111"},
		"skills":             {"masonry", "plumbing", "masonry"},
		"availability_start": {"2026-11-01"},
		"availability_end":   {"2026-11-30"},
	})
	require.NoError(t, err)
	require.Nil(t, errs)

	offer := p.NewVolunteerOffer(f)
	require.Equal(t, []string{"masonry", "plumbing"}, offer.Skills)
	require.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), *offer.AvailabilityStart)
	require.Equal(t, time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC), *offer.AvailabilityEnd)

	_, errs, err = p.VolunteerOffer("en", url.Values{
		"full_name":          {"Kumar"},
		"phone_number":       {"0711111111"},
		"skills":             {"juggling"},
		"availability_start": {"2026-12-01"},
		"availability_end":   {"2026-11-30"},
	})
	require.NoError(t, err)
	require.Equal(t, "Skills is not a valid choice.", errs["skills"])
	require.Equal(t, "Availability start must be on or before the end date.", errs["availability_end"])
}

func TestRegister(t *testing.T) {
	p := newProcessor(t)

	f, errs, err := p.Register("en", url.Values{
		"email":            {" admin@relief.lk "},
		"password":         {"floodrelief"},
		"confirm_password": {"floodrelief"},
	})
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, "admin@relief.lk", f.Email)

	_, errs, err = p.Register("en", url.Values{
		"email":            {"not-an-email"},
		"password":         {"short"},
		"confirm_password": {"other"},
	})
	require.NoError(t, err)
	require.Equal(t, "Enter a valid email address.", errs["email"])
	require.Equal(t, "Password must be at least 8 characters.", errs["password"])
	require.Equal(t, "Passwords do not match.", errs["confirm_password"])
}

func TestConfirmRegister(t *testing.T) {
	p := newProcessor(t)

	_, errs, err := p.ConfirmRegister("en", url.Values{"email": {"admin@relief.lk"}, "code": {"123456"}})
	require.NoError(t, err)
	require.Nil(t, errs)

	_, errs, err = p.ConfirmRegister("en", url.Values{"email": {"admin@relief.lk"}, "code": {"12ab"}})
	require.NoError(t, err)
	require.Equal(t, "Enter the 6 digit code from the email.", errs["code"])
}
