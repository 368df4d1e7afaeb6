package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *adminFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f *adminFixture) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAdminListAppliesFiltersFromQuery(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.get(t, "/admin/reports?district=Colombo")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Nimal Perera")
	assert.NotContains(t, body, "Kamala Silva")
	assert.Contains(t, body, `<option value="Colombo" selected>`)

	require.NotEmpty(t, f.source.queries)
	last := f.source.queries[len(f.source.queries)-1]
	require.Len(t, last.Where, 1)
	assert.Equal(t, "district", last.Where[0].Column)
	assert.Equal(t, "Colombo", last.Where[0].Value)
}

func TestAdminSelectionPersistsAcrossRequests(t *testing.T) {
	f := newAdminFixture(t)
	f.get(t, "/admin/reports")

	rec := f.post(t, "/admin/reports/select", url.Values{"action": {"toggle"}, "id": {"r1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/reports", rec.Header().Get("Location"))

	rec = f.get(t, "/admin/reports")
	assert.Contains(t, rec.Body.String(), "1 selected")

	rec = f.post(t, "/admin/reports/select", url.Values{"action": {"clear"}, "state": {"district=Gampaha"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/reports?district=Gampaha", rec.Header().Get("Location"))

	rec = f.get(t, "/admin/reports")
	assert.Contains(t, rec.Body.String(), "0 selected")
}

func TestAdminSelectRejectsUnknownAction(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.post(t, "/admin/reports/select", url.Values{"action": {"explode"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminBulkVerifyWritesSelection(t *testing.T) {
	f := newAdminFixture(t)
	f.get(t, "/admin/reports")
	f.post(t, "/admin/reports/select", url.Values{"action": {"all"}})

	rec := f.post(t, "/admin/reports/bulk-verify", url.Values{"verified": {"true"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	require.Len(t, f.writer.calls, 1)
	assert.ElementsMatch(t, []string{"r1", "r2"}, f.writer.calls[0].ids)
	assert.True(t, f.writer.calls[0].verified)

	rec = f.get(t, "/admin/reports")
	assert.Contains(t, rec.Body.String(), "Updated 2 records")
}

func TestAdminBulkVerifyWithoutSelectionWarns(t *testing.T) {
	f := newAdminFixture(t)
	f.get(t, "/admin/reports")

	rec := f.post(t, "/admin/reports/bulk-verify", url.Values{"verified": {"true"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, f.writer.calls)

	// the rows fragment leaves notices for the full page
	rec = f.get(t, "/admin/reports/rows")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="admin-rows"`)
	assert.NotContains(t, rec.Body.String(), "Select at least one record")

	rec = f.get(t, "/admin/reports")
	assert.Contains(t, rec.Body.String(), "Select at least one record")
}

func TestAdminVerifySingleRecord(t *testing.T) {
	f := newAdminFixture(t)
	f.get(t, "/admin/reports")

	rec := f.post(t, "/admin/reports/r2/verify", url.Values{"verified": {"true"}, "from": {"detail"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/reports/r2", rec.Header().Get("Location"))

	require.Len(t, f.writer.calls, 1)
	assert.Equal(t, []string{"r2"}, f.writer.calls[0].ids)
}

func TestAdminExportWritesCSVAttachment(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.get(t, "/admin/reports/export?district=Gampaha")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="damage-reports_export_\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}Z\.csv"$`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,full_name,phone_number"))
	assert.True(t, strings.HasPrefix(lines[1], "r2,Kamala Silva"))
}

func TestAdminDetail(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.get(t, "/admin/reports/r1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nimal Perera")

	rec = f.get(t, "/admin/reports/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.get(t, "/admin/reports/R1%27--")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminViewsAreScopedPerUser(t *testing.T) {
	f := newAdminFixture(t)
	f.get(t, "/admin/reports")
	f.post(t, "/admin/reports/select", url.Values{"action": {"toggle"}, "id": {"r1"}})

	assert.Equal(t, 1, f.svc.views.size())

	f.svc.views.drop("admin-1")
	assert.Equal(t, 0, f.svc.views.size())

	rec := f.get(t, "/admin/reports")
	assert.Contains(t, rec.Body.String(), "0 selected")
}
