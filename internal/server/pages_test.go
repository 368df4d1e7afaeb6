package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"homerelief/internal"
	"homerelief/internal/divisions"
	"homerelief/internal/forms"
	"homerelief/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLang(r *http.Request, lang string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKeyLang, lang))
}

func testFormService(t *testing.T) *Service {
	t.Helper()

	svc := testService(t)
	catalog, err := divisions.Default()
	require.NoError(t, err)

	processor, err := forms.NewProcessor(svc.i18n, catalog)
	require.NoError(t, err)

	svc.divisions = catalog
	svc.forms = processor
	return svc
}

func newTestMux(svc *Service) *flow.Mux {
	mux := flow.New()
	mux.HandleFunc("/lang/:code", svc.handleSetLanguage, http.MethodGet)
	return mux
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"":                 "/",
		"/admin/reports":   "/admin/reports",
		"/report?x=1":      "/report?x=1",
		"https://evil.com": "/",
		"//evil.com":       "/",
		"/\\evil.com":      "/",
	}

	for in, want := range tests {
		assert.Equal(t, want, localPath(in), in)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	svc := testService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := svc.StripTrailingSlash(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/reports/?page=2", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/admin/reports?page=2", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequireAdminRendersAccessDenied(t *testing.T) {
	svc := testService(t)
	h := svc.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyUserID, "u1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You need administrator access")
}

func TestSetLanguageStoresCookie(t *testing.T) {
	svc := testService(t)

	mux := newTestMux(svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lang/si?next=/donate", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/donate", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, internal.COOKIE_LANG_NAME, cookies[0].Name)
	assert.Equal(t, "si", cookies[0].Value)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lang/fr", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFloodMapPage(t *testing.T) {
	svc := testService(t)

	rec := httptest.NewRecorder()
	svc.handleFloodMap(rec, withLang(httptest.NewRequest(http.MethodGet, "/flood-map", nil), "en"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), floodMapEmbedURL)
}

func TestDamageReportFormRendersDivisions(t *testing.T) {
	svc := testFormService(t)

	req := withLang(httptest.NewRequest(http.MethodGet, "/report?district=Colombo", nil), "en")
	rec := httptest.NewRecorder()
	svc.handleGetDamageReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Colombo" selected>`)
	assert.Contains(t, body, "Kolonnawa")
	assert.Contains(t, body, `enctype="multipart/form-data"`)
}

func TestDivisionsEndpoint(t *testing.T) {
	svc := testFormService(t)

	rec := httptest.NewRecorder()
	svc.handleGetDivisions(rec, httptest.NewRequest(http.MethodGet, "/report/divisions?district=Colombo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"ds_divisions":[`)
	assert.Contains(t, rec.Body.String(), "Kolonnawa")
}

func TestDonationOfferValidationErrors(t *testing.T) {
	svc := testFormService(t)

	form := url.Values{
		"name":         {"  "},
		"email":        {"not-an-email"},
		"support_type": {"gold"},
	}
	req := httptest.NewRequest(http.MethodPost, "/donate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	svc.handlePostDonationOffer(rec, withLang(req, "en"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please fix the highlighted fields.")
	assert.Contains(t, body, `class="field-error"`)
	assert.Contains(t, body, `value="not-an-email"`)
}

func TestVolunteerOfferValidationErrorsAreTranslated(t *testing.T) {
	svc := testFormService(t)

	form := url.Values{
		"full_name":          {"Sunil"},
		"phone_number":       {"0771234567"},
		"availability_start": {"2024-12-10"},
		"availability_end":   {"2024-12-01"},
	}
	req := httptest.NewRequest(http.MethodPost, "/volunteer", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	svc.handlePostVolunteerOffer(rec, withLang(req, "en"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select at least one option for Skills.")
}

func TestOptionsMarkSelected(t *testing.T) {
	svc := testService(t)

	opts := svc.options("en", "support.", []string{"materials", "money"}, "money")
	require.Len(t, opts, 2)
	assert.Equal(t, types.Option{Value: "materials", Label: "Materials"}, opts[0])
	assert.Equal(t, types.Option{Value: "money", Label: "Money", Selected: true}, opts[1])
}
