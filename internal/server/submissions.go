package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"homerelief/internal/forms"
	"homerelief/internal/mailer"
	"homerelief/internal/storage"
	"homerelief/pkg/types"
)

const maxReportBody = storage.MaxPhotoBytes + 1<<20

func (s *Service) options(lang, prefix string, values []string, selected ...string) []types.Option {
	out := make([]types.Option, len(values))
	for i, v := range values {
		out[i] = types.Option{
			Value:    v,
			Label:    s.i18n.T(lang, prefix+v),
			Selected: slices.Contains(selected, v),
		}
	}
	return out
}

func stringsOf[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (s *Service) damageReportPage(r *http.Request, form types.DamageReportForm, errs forms.Errors) *types.DamageReportPageData {
	lang := langFromContext(r.Context())

	districts := make([]types.Option, 0)
	for _, name := range s.divisions.DistrictNames() {
		districts = append(districts, types.Option{Value: name, Label: name, Selected: name == form.District})
	}

	data := &types.DamageReportPageData{
		BasePageData: types.BasePageData{Title: s.i18n.T(lang, "report.title")},
		Form:         form,
		FieldErrors:  errs,
		Districts:    districts,
		DSDivisions:  s.divisions.Divisions(form.District),
		GNDivisions:  s.divisions.GNDivisions(form.District, form.DSDivision),
		DamageTypes:  s.options(lang, "damage.", stringsOf(types.DamageTypes), form.DamageType),
		Needs:        s.options(lang, "need.", types.EssentialNeeds, form.EssentialNeeds...),
	}
	if len(errs) > 0 {
		data.Error = s.i18n.T(lang, "form.fix_errors")
	}
	return data
}

func (s *Service) handleGetDamageReport(w http.ResponseWriter, r *http.Request) {
	form := types.DamageReportForm{
		District:      r.URL.Query().Get("district"),
		DSDivision:    r.URL.Query().Get("ds_division"),
		FamilyMembers: 1,
	}

	if err := s.renderTemplate(w, r, "page.report", s.damageReportPage(r, form, nil)); err != nil {
		s.logger.WithError(err).Error("failed to render damage report page")
		s.internalServerError(w)
		return
	}
}

// handleGetDivisions feeds the dependent DS and GN selects on the report form.
func (s *Service) handleGetDivisions(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")

	resp := struct {
		DSDivisions []string `json:"ds_divisions"`
		GNDivisions []string `json:"gn_divisions"`
	}{
		DSDivisions: s.divisions.Divisions(district),
		GNDivisions: s.divisions.GNDivisions(district, r.URL.Query().Get("ds_division")),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.WithError(err).Error("failed to encode divisions")
	}
}

func (s *Service) handlePostDamageReport(w http.ResponseWriter, r *http.Request) {
	lang := langFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxReportBody)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		s.logger.WithError(err).Info("failed to parse damage report form")
		s.redirectWithError(w, r, s.i18n.T(lang, "report.photo_invalid"))
		return
	}

	form, errs, err := s.forms.DamageReport(lang, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to validate damage report")
		s.internalServerError(w)
		return
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		file = nil
	case err != nil:
		s.logger.WithError(err).Info("failed to read damage photo")
		file = nil
		errs = addFieldError(errs, "photo", s.i18n.T(lang, "report.photo_invalid"))
	}
	if file != nil {
		defer file.Close()
	}

	var photoKey string
	if file != nil {
		photoKey, err = storage.PhotoKey(header.Header.Get("Content-Type"), header.Size)
		if err != nil {
			errs = addFieldError(errs, "photo", s.i18n.T(lang, "report.photo_invalid"))
		}
	}

	if len(errs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := s.renderTemplate(w, r, "page.report", s.damageReportPage(r, *form, errs)); err != nil {
			s.logger.WithError(err).Error("failed to render damage report page with errors")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	var photoURL *string
	if photoKey != "" {
		url, err := s.uploader.Upload(ctx, photoKey, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			s.logger.WithError(err).WithField("key", photoKey).Error("failed to upload damage photo")
			s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
			return
		}
		photoURL = &url
	}

	report := s.forms.NewDamageReport(form, photoURL)
	if err := s.reportsRepo.CreateDamageReport(ctx, report); err != nil {
		s.logger.WithError(err).Error("failed to create damage report")
		s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
		return
	}

	s.logger.WithField("id", report.ID).Info("damage report submitted")
	s.redirectWithNotice(w, r, s.i18n.T(lang, "report.submitted"))
}

func addFieldError(errs forms.Errors, field, msg string) forms.Errors {
	if errs == nil {
		errs = forms.Errors{}
	}
	if _, exists := errs[field]; !exists {
		errs[field] = msg
	}
	return errs
}

func (s *Service) donationOfferPage(r *http.Request, form types.DonationOfferForm, errs forms.Errors) *types.DonationOfferPageData {
	lang := langFromContext(r.Context())

	data := &types.DonationOfferPageData{
		BasePageData: types.BasePageData{Title: s.i18n.T(lang, "donate.title")},
		Form:         form,
		FieldErrors:  errs,
		SupportTypes: s.options(lang, "support.", stringsOf(types.SupportTypes), form.SupportType),
	}
	if len(errs) > 0 {
		data.Error = s.i18n.T(lang, "form.fix_errors")
	}
	return data
}

func (s *Service) handleGetDonationOffer(w http.ResponseWriter, r *http.Request) {
	if err := s.renderTemplate(w, r, "page.donate", s.donationOfferPage(r, types.DonationOfferForm{}, nil)); err != nil {
		s.logger.WithError(err).Error("failed to render donation page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostDonationOffer(w http.ResponseWriter, r *http.Request) {
	lang := langFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
		return
	}

	form, errs, err := s.forms.DonationOffer(lang, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to validate donation offer")
		s.internalServerError(w)
		return
	}
	if len(errs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := s.renderTemplate(w, r, "page.donate", s.donationOfferPage(r, *form, errs)); err != nil {
			s.logger.WithError(err).Error("failed to render donation page with errors")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offer := s.forms.NewDonationOffer(form)
	if err := s.donationsRepo.CreateDonationOffer(ctx, offer); err != nil {
		s.logger.WithError(err).Error("failed to create donation offer")
		s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
		return
	}

	if offer.Email != nil {
		s.sendDonationThanks(ctx, offer)
	}

	s.redirectWithNotice(w, r, s.i18n.T(lang, "donate.submitted"))
}

// sendDonationThanks never fails the submission; the offer is already stored.
func (s *Service) sendDonationThanks(ctx context.Context, offer *types.DonationOffer) {
	msg, err := mailer.DonationThanks(offer)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.logger.WithError(err).WithField("id", offer.ID).Error("failed to send donation thanks")
	}
}

func (s *Service) volunteerOfferPage(r *http.Request, form types.VolunteerOfferForm, errs forms.Errors) *types.VolunteerOfferPageData {
	lang := langFromContext(r.Context())

	data := &types.VolunteerOfferPageData{
		BasePageData: types.BasePageData{Title: s.i18n.T(lang, "volunteer.title")},
		Form:         form,
		FieldErrors:  errs,
		Skills:       s.options(lang, "skill.", types.VolunteerSkills, form.Skills...),
	}
	if len(errs) > 0 {
		data.Error = s.i18n.T(lang, "form.fix_errors")
	}
	return data
}

func (s *Service) handleGetVolunteerOffer(w http.ResponseWriter, r *http.Request) {
	if err := s.renderTemplate(w, r, "page.volunteer", s.volunteerOfferPage(r, types.VolunteerOfferForm{}, nil)); err != nil {
		s.logger.WithError(err).Error("failed to render volunteer page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostVolunteerOffer(w http.ResponseWriter, r *http.Request) {
	lang := langFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
		return
	}

	form, errs, err := s.forms.VolunteerOffer(lang, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to validate volunteer offer")
		s.internalServerError(w)
		return
	}
	if len(errs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := s.renderTemplate(w, r, "page.volunteer", s.volunteerOfferPage(r, *form, errs)); err != nil {
			s.logger.WithError(err).Error("failed to render volunteer page with errors")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offer := s.forms.NewVolunteerOffer(form)
	if err := s.volunteersRepo.CreateVolunteerOffer(ctx, offer); err != nil {
		s.logger.WithError(err).Error("failed to create volunteer offer")
		s.redirectWithError(w, r, s.i18n.T(lang, "form.failed"))
		return
	}

	s.redirectWithNotice(w, r, s.i18n.T(lang, "volunteer.submitted"))
}
