package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homerelief/internal"
	"homerelief/internal/collection"
	"homerelief/internal/i18n"
	"homerelief/pkg/types"
)

const (
	publicListingSize = 6
	floodMapEmbedURL  = "https://nuuuwan.github.io/lk_dmc_vis"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	lang := langFromContext(ctx)
	data := &types.HomePageData{
		BasePageData: types.BasePageData{
			Title:  s.i18n.T(lang, "home.title"),
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
	}

	counts, err := s.statsRepo.Counts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count records")
	}
	data.Counts = counts

	verifiedOnly := collection.State{Filters: map[string]string{"verified": "verified"}}

	reports := collection.NewView(collection.DamageReportSchema(publicListingSize), s.reportsRepo)
	if err := reports.Apply(ctx, verifiedOnly); err != nil {
		s.logger.WithError(err).Error("failed to load verified damage reports")
	}
	data.Reports = reports.Records()

	donors := collection.NewView(collection.DonationOfferSchema(publicListingSize), s.donationsRepo)
	if err := donors.Apply(ctx, verifiedOnly); err != nil {
		s.logger.WithError(err).Error("failed to load verified donation offers")
	}
	data.Donors = donors.Records()

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleFloodMap(w http.ResponseWriter, r *http.Request) {
	data := &types.FloodMapPageData{
		BasePageData: types.BasePageData{Title: s.t(r, "flood.title")},
		EmbedURL:     floodMapEmbedURL,
	}

	if err := s.renderTemplate(w, r, "page.flood-map", data); err != nil {
		s.logger.WithError(err).Error("failed to render flood map page")
		s.internalServerError(w)
		return
	}
}

// handleSetLanguage stores the chosen language and returns to the page the
// switch was used on.
func (s *Service) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !i18n.IsSupported(code) {
		http.NotFound(w, r)
		return
	}

	s.writeCookie(w, internal.COOKIE_LANG_NAME, code, 365*24*time.Hour)

	http.Redirect(w, r, localPath(r.URL.Query().Get("next")), http.StatusSeeOther)
}

// localPath only allows same-site absolute paths and falls back to "/".
func localPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
