package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homerelief/internal/collection"
	"homerelief/internal/utils"
	"homerelief/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

type adminColumn[T collection.Record] struct {
	// Sort is the schema column the header sorts by, "" when not sortable.
	Sort     string
	LabelKey string
	Value    func(lang string, rec T) string
}

type adminFilter struct {
	Name     string
	LabelKey string
	// Values are offered in order; labels are translated with LabelPrefix
	// unless it is empty.
	Values      []string
	LabelPrefix string
}

// adminTable wires one record kind into the admin dashboard.
type adminTable[T collection.Record] struct {
	s        *Service
	slug     string
	titleKey string
	schema   collection.Schema
	source   collection.Source[T]
	writer   collection.VerificationWriter

	byID          func(ctx context.Context, id string) (T, error)
	columns       []adminColumn[T]
	filters       []adminFilter
	exportColumns []collection.Column[T]
	exportPrefix  string

	detail   func(lang string, rec T) []types.AdminField
	mapURL   func(rec T) string
	photoURL func(rec T) string
	verified func(rec T) bool
}

func (t *adminTable[T]) basePath() string {
	return "/admin/" + t.slug
}

func (t *adminTable[T]) key(r *http.Request) viewKey {
	userID, _ := t.s.userIDFromContext(r.Context())
	return viewKey{userID: userID, kind: t.schema.Kind}
}

func (t *adminTable[T]) view(r *http.Request) *collection.View[T] {
	return getView(t.s.views, t.key(r), func() *collection.View[T] {
		opts := []collection.Option{}
		if t.writer != nil {
			opts = append(opts, collection.WithVerificationWriter(t.writer))
		}
		return collection.NewView(t.schema, t.source, opts...)
	})
}

func registerAdminTable[T collection.Record](r *flow.Mux, t *adminTable[T]) {
	base := t.basePath()

	r.HandleFunc(base, t.handleList, http.MethodGet)
	r.HandleFunc(base+"/rows", t.handleRows, http.MethodGet)
	r.HandleFunc(base+"/export", t.handleExport, http.MethodGet)
	r.HandleFunc(base+"/live", t.handleLive, http.MethodGet)
	r.HandleFunc(base+"/select", t.handleSelect, http.MethodPost)
	r.HandleFunc(base+"/bulk-verify", t.handleBulkVerify, http.MethodPost)
	r.HandleFunc(base+"/:id/verify", t.handleVerify, http.MethodPost)
	r.HandleFunc(base+"/:id", t.handleDetail, http.MethodGet)
}

func (s *Service) handleAdminIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/reports", http.StatusSeeOther)
}

// load applies the state encoded in values to the view. When the view already
// holds that state the current page is reused without fetching again.
func (t *adminTable[T]) load(ctx context.Context, v *collection.View[T], values url.Values, force bool) {
	state := collection.FromValues(t.schema, values)
	if !force && v.Status() == collection.StatusLoaded && v.State().Values().Encode() == state.Values().Encode() {
		return
	}

	err := v.Apply(ctx, state)
	if err != nil && !errors.Is(err, collection.ErrStale) {
		t.s.logger.WithError(err).WithField("kind", t.schema.Kind).Error("failed to load admin view")
	}
}

func (t *adminTable[T]) handleList(w http.ResponseWriter, r *http.Request) {
	v := t.view(r)
	t.load(r.Context(), v, r.URL.Query(), true)

	if err := t.s.renderTemplate(w, r, "page.admin.table", t.pageData(r, v, true)); err != nil {
		t.s.logger.WithError(err).Error("failed to render admin table")
		t.s.internalServerError(w)
		return
	}
}

// handleRows renders only the table body. Live clients call it after a change
// event.
func (t *adminTable[T]) handleRows(w http.ResponseWriter, r *http.Request) {
	v := t.view(r)
	t.load(r.Context(), v, r.URL.Query(), false)

	if err := t.s.renderTemplate(w, r, "fragment.admin.rows", t.pageData(r, v, false)); err != nil {
		t.s.logger.WithError(err).Error("failed to render admin rows")
		t.s.internalServerError(w)
		return
	}
}

// backToList sends the browser to the list with the state it posted from.
func (t *adminTable[T]) backToList(w http.ResponseWriter, r *http.Request) {
	state := collection.FromValues(t.schema, parseStateQuery(r.PostFormValue("state")))
	target := t.basePath()
	if q := state.Values().Encode(); q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseStateQuery(raw string) url.Values {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}
	return values
}

func (t *adminTable[T]) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	v := t.view(r)
	t.load(r.Context(), v, parseStateQuery(r.PostFormValue("state")), false)

	id := r.PostFormValue("id")
	switch r.PostFormValue("action") {
	case "toggle":
		if id != "" {
			v.Toggle(id)
		}
	case "all":
		v.SelectAllVisible()
	case "toggle_all":
		v.ToggleAllVisible()
	case "clear":
		v.ClearSelection()
	default:
		http.Error(w, "unknown selection action", http.StatusBadRequest)
		return
	}

	t.backToList(w, r)
}

func (t *adminTable[T]) handleBulkVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	v := t.view(r)
	verified := r.PostFormValue("verified") == "true"

	n, err := v.BulkSetVerified(r.Context(), verified)
	switch {
	case errors.Is(err, collection.ErrEmptySelection), errors.Is(err, collection.ErrNotPermitted):
	case err != nil:
		t.s.logger.WithError(err).WithField("kind", t.schema.Kind).Error("failed to bulk update verification")
	default:
		t.s.logger.WithFields(logrus.Fields{
			"kind":     t.schema.Kind,
			"count":    n,
			"verified": verified,
		}).Info("bulk verification updated")
	}

	t.backToList(w, r)
}

func (t *adminTable[T]) handleVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	if !utils.IsNanoID(id) {
		http.NotFound(w, r)
		return
	}
	verified := r.PostFormValue("verified") == "true"

	v := t.view(r)
	err := v.SetVerified(r.Context(), id, verified)
	if err != nil && !errors.Is(err, collection.ErrNotPermitted) {
		t.s.logger.WithError(err).WithField("id", id).Error("failed to update verification")
	}

	if r.PostFormValue("from") == "detail" {
		http.Redirect(w, r, t.basePath()+"/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}
	t.backToList(w, r)
}

func (t *adminTable[T]) handleExport(w http.ResponseWriter, r *http.Request) {
	v := t.view(r)
	t.load(r.Context(), v, r.URL.Query(), false)

	filename := collection.ExportFilename(t.exportPrefix, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	n, err := v.Export(w, t.exportColumns)
	if err != nil {
		t.s.logger.WithError(err).WithField("kind", t.schema.Kind).Error("failed to export records")
		return
	}

	t.s.logger.WithFields(logrus.Fields{
		"kind":  t.schema.Kind,
		"count": n,
	}).Info("records exported")
}

func (t *adminTable[T]) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !utils.IsNanoID(id) {
		http.NotFound(w, r)
		return
	}
	lang := langFromContext(r.Context())

	rec, err := t.byID(r.Context(), id)
	if errors.Is(err, types.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		t.s.logger.WithError(err).WithField("id", id).Error("failed to load record")
		t.s.internalServerError(w)
		return
	}

	data := &types.AdminDetailPageData{
		BasePageData: types.BasePageData{Title: t.s.i18n.T(lang, t.titleKey)},
		ID:           id,
		BasePath:     t.basePath(),
		BackURL:      t.basePath(),
		Fields:       t.detail(lang, rec),
		Verifiable:   t.writer != nil,
	}
	if q := t.view(r).State().Values().Encode(); q != "" {
		data.BackURL += "?" + q
	}
	if t.mapURL != nil {
		data.MapURL = t.mapURL(rec)
	}
	if t.photoURL != nil {
		data.PhotoURL = t.photoURL(rec)
	}
	if t.verified != nil {
		data.Verified = t.verified(rec)
	}

	if err := t.s.renderTemplate(w, r, "page.admin.detail", data); err != nil {
		t.s.logger.WithError(err).Error("failed to render admin detail")
		t.s.internalServerError(w)
		return
	}
}

var adminTabs = []struct {
	slug     string
	labelKey string
}{
	{"reports", "admin.reports"},
	{"donors", "admin.donors"},
	{"volunteers", "admin.volunteers"},
}

// pageData builds the table screen. Notices are drained only when
// takeNotices is set so fragment refreshes do not swallow them.
func (t *adminTable[T]) pageData(r *http.Request, v *collection.View[T], takeNotices bool) *types.AdminTablePageData {
	lang := langFromContext(r.Context())
	base := t.basePath()
	state := v.State()
	query := state.Values().Encode()

	withQuery := func(path string, q url.Values) string {
		if enc := q.Encode(); enc != "" {
			return path + "?" + enc
		}
		return path
	}

	data := &types.AdminTablePageData{
		BasePageData: types.BasePageData{Title: t.s.i18n.T(lang, t.titleKey)},
		BasePath:     base,
		StateQuery:   query,
		Search:       state.Search,
		CanVerify:    v.CanVerify(),
		LoadFailed:   v.Status() == collection.StatusErrored,
		Page:         state.Page,
		PageCount:    v.PageCount(),
		ExportURL:    withQuery(base+"/export", state.Values()),
		LiveURL:      withQuery(base+"/live", state.Values()),
		RowsURL:      withQuery(base+"/rows", state.Values()),
	}
	data.Total, _ = v.Total()

	if state.Sort.Column != "" {
		data.SortColumn = state.Sort.Column
		data.SortDir = "asc"
		if state.Sort.Desc {
			data.SortDir = "desc"
		}
	}

	for _, tab := range adminTabs {
		data.Tabs = append(data.Tabs, types.AdminTab{
			Label:  t.s.i18n.T(lang, tab.labelKey),
			URL:    "/admin/" + tab.slug,
			Active: tab.slug == t.slug,
		})
	}

	active := state.Sort
	if active.Column == "" {
		active = t.schema.DefaultSort
	}
	for _, col := range t.columns {
		h := types.AdminHeader{Label: t.s.i18n.T(lang, col.LabelKey)}
		if col.Sort != "" && t.schema.CanSort(col.Sort) {
			h.SortURL = withQuery(base, state.WithToggledSort(t.schema, col.Sort).Values())
			h.Active = active.Column == col.Sort
			h.Desc = h.Active && active.Desc
		}
		data.Headers = append(data.Headers, h)
	}

	for _, f := range t.filters {
		current := state.Filter(f.Name)
		options := []types.Option{{
			Value:    collection.FilterAll,
			Label:    t.s.i18n.T(lang, "admin.filter_all"),
			Selected: current == "",
		}}
		for _, value := range f.Values {
			label := value
			if f.LabelPrefix != "" {
				label = t.s.i18n.T(lang, f.LabelPrefix+value)
			}
			options = append(options, types.Option{Value: value, Label: label, Selected: current == value})
		}
		data.Filters = append(data.Filters, types.AdminFilter{
			Name:    f.Name,
			Label:   t.s.i18n.T(lang, f.LabelKey),
			Options: options,
		})
	}

	records := v.Records()
	for _, rec := range records {
		id := rec.RecordID()
		row := types.AdminRow{
			ID:         id,
			Verifiable: v.CanVerify(),
			Selected:   v.IsSelected(id),
			DetailURL:  base + "/" + url.PathEscape(id),
		}
		for _, col := range t.columns {
			row.Cells = append(row.Cells, col.Value(lang, rec))
		}
		if t.verified != nil {
			row.Verified = t.verified(rec)
		}
		if t.mapURL != nil {
			row.MapURL = t.mapURL(rec)
		}
		data.Rows = append(data.Rows, row)
	}
	data.AllSelected = len(records) > 0 && v.AllVisibleSelected()

	var notices []collection.Notice
	if takeNotices {
		notices = v.TakeNotices()
	}
	for _, n := range notices {
		data.Notices = append(data.Notices, types.AdminNotice{
			Level: string(n.Level),
			Text:  t.s.i18n.T(lang, n.Key, n.Params...),
		})
	}

	sum := v.Summary()
	data.Summary = types.AdminSummary{
		Visible:      sum.Visible,
		Verified:     sum.Verified,
		Pending:      sum.Pending,
		Families:     sum.Families,
		Mapped:       sum.Mapped,
		Selected:     sum.Selected,
		ShowFamilies: t.schema.Kind == types.KindDamageReport,
		ShowMapped:   t.schema.Kind == types.KindDamageReport,
	}

	if state.Page > 1 {
		data.PrevURL = withQuery(base, state.WithPage(state.Page-1).Values())
	}
	if state.Page < data.PageCount {
		data.NextURL = withQuery(base, state.WithPage(state.Page+1).Values())
	}

	return data
}

func (s *Service) verifiedLabel(lang string, verified bool) string {
	if verified {
		return s.i18n.T(lang, "admin.verified")
	}
	return s.i18n.T(lang, "admin.pending")
}

func (s *Service) damageReportTable() *adminTable[*types.DamageReport] {
	return &adminTable[*types.DamageReport]{
		s:             s,
		slug:          "reports",
		titleKey:      "admin.reports",
		schema:        collection.DamageReportSchema(s.pageSize()),
		source:        s.reportsRepo,
		writer:        s.reportsRepo,
		byID:          s.reportsRepo.DamageReport,
		exportColumns: collection.DamageReportColumns,
		exportPrefix:  "damage-reports",
		columns: []adminColumn[*types.DamageReport]{
			{Sort: "full_name", LabelKey: "field.full_name", Value: func(_ string, d *types.DamageReport) string { return d.FullName }},
			{LabelKey: "field.phone_number", Value: func(_ string, d *types.DamageReport) string { return d.PhoneNumber }},
			{Sort: "district", LabelKey: "field.district", Value: func(_ string, d *types.DamageReport) string {
				return d.District + " / " + d.DSDivision
			}},
			{Sort: "damage_type", LabelKey: "field.damage_type", Value: func(lang string, d *types.DamageReport) string {
				return s.i18n.T(lang, "damage."+string(d.DamageType))
			}},
			{Sort: "family_members", LabelKey: "field.family_members", Value: func(_ string, d *types.DamageReport) string {
				return strconv.Itoa(d.FamilyMembers)
			}},
			{LabelKey: "field.essential_needs", Value: func(lang string, d *types.DamageReport) string {
				return s.translateList(lang, "need.", d.EssentialNeeds)
			}},
			{Sort: "verified", LabelKey: "field.verified", Value: func(lang string, d *types.DamageReport) string {
				return s.verifiedLabel(lang, d.Verified)
			}},
			{Sort: "created_at", LabelKey: "field.created_at", Value: func(_ string, d *types.DamageReport) string {
				return collection.Timestamp(d.CreatedAt)
			}},
		},
		filters: []adminFilter{
			{Name: "district", LabelKey: "field.district", Values: s.divisions.DistrictNames()},
			{Name: "damage_type", LabelKey: "field.damage_type", Values: stringsOf(types.DamageTypes), LabelPrefix: "damage."},
			{Name: "verified", LabelKey: "field.verified", Values: []string{"verified", "pending"}, LabelPrefix: "admin."},
			{Name: "need", LabelKey: "admin.filter.need", Values: types.EssentialNeeds, LabelPrefix: "need."},
		},
		detail: func(lang string, d *types.DamageReport) []types.AdminField {
			return []types.AdminField{
				{Label: s.i18n.FieldLabel(lang, "full_name"), Value: d.FullName},
				{Label: s.i18n.FieldLabel(lang, "phone_number"), Value: d.PhoneNumber},
				{Label: s.i18n.FieldLabel(lang, "district"), Value: d.District},
				{Label: s.i18n.FieldLabel(lang, "ds_division"), Value: d.DSDivision},
				{Label: s.i18n.FieldLabel(lang, "gn_division"), Value: d.GNDivision},
				{Label: s.i18n.FieldLabel(lang, "damage_type"), Value: s.i18n.T(lang, "damage."+string(d.DamageType))},
				{Label: s.i18n.FieldLabel(lang, "family_members"), Value: strconv.Itoa(d.FamilyMembers)},
				{Label: s.i18n.FieldLabel(lang, "essential_needs"), Value: s.translateList(lang, "need.", d.EssentialNeeds)},
				{Label: s.i18n.FieldLabel(lang, "latitude"), Value: collection.OptFloat(d.Latitude)},
				{Label: s.i18n.FieldLabel(lang, "longitude"), Value: collection.OptFloat(d.Longitude)},
				{Label: s.i18n.FieldLabel(lang, "verified"), Value: s.verifiedLabel(lang, d.Verified)},
				{Label: s.i18n.FieldLabel(lang, "created_at"), Value: collection.Timestamp(d.CreatedAt)},
				{Label: s.i18n.FieldLabel(lang, "updated_at"), Value: collection.Timestamp(d.UpdatedAt)},
			}
		},
		mapURL:   (*types.DamageReport).MapURL,
		photoURL: func(d *types.DamageReport) string { return collection.OptString(d.PhotoURL) },
		verified: func(d *types.DamageReport) bool { return d.Verified },
	}
}

func (s *Service) donationOfferTable() *adminTable[*types.DonationOffer] {
	return &adminTable[*types.DonationOffer]{
		s:             s,
		slug:          "donors",
		titleKey:      "admin.donors",
		schema:        collection.DonationOfferSchema(s.pageSize()),
		source:        s.donationsRepo,
		writer:        s.donationsRepo,
		byID:          s.donationsRepo.DonationOffer,
		exportColumns: collection.DonationOfferColumns,
		exportPrefix:  "donation-offers",
		columns: []adminColumn[*types.DonationOffer]{
			{Sort: "name", LabelKey: "field.name", Value: func(_ string, d *types.DonationOffer) string { return d.Name }},
			{LabelKey: "field.phone", Value: func(_ string, d *types.DonationOffer) string { return collection.OptString(d.Phone) }},
			{LabelKey: "field.email", Value: func(_ string, d *types.DonationOffer) string { return collection.OptString(d.Email) }},
			{Sort: "support_type", LabelKey: "field.support_type", Value: func(lang string, d *types.DonationOffer) string {
				return s.i18n.T(lang, "support."+string(d.SupportType))
			}},
			{Sort: "verified", LabelKey: "field.verified", Value: func(lang string, d *types.DonationOffer) string {
				return s.verifiedLabel(lang, d.Verified)
			}},
			{Sort: "created_at", LabelKey: "field.created_at", Value: func(_ string, d *types.DonationOffer) string {
				return collection.Timestamp(d.CreatedAt)
			}},
		},
		filters: []adminFilter{
			{Name: "support_type", LabelKey: "field.support_type", Values: stringsOf(types.SupportTypes), LabelPrefix: "support."},
			{Name: "verified", LabelKey: "field.verified", Values: []string{"verified", "pending"}, LabelPrefix: "admin."},
		},
		detail: func(lang string, d *types.DonationOffer) []types.AdminField {
			return []types.AdminField{
				{Label: s.i18n.FieldLabel(lang, "name"), Value: d.Name},
				{Label: s.i18n.FieldLabel(lang, "phone"), Value: collection.OptString(d.Phone)},
				{Label: s.i18n.FieldLabel(lang, "email"), Value: collection.OptString(d.Email)},
				{Label: s.i18n.FieldLabel(lang, "support_type"), Value: s.i18n.T(lang, "support."+string(d.SupportType))},
				{Label: s.i18n.FieldLabel(lang, "description"), Value: collection.OptString(d.Description)},
				{Label: s.i18n.FieldLabel(lang, "verified"), Value: s.verifiedLabel(lang, d.Verified)},
				{Label: s.i18n.FieldLabel(lang, "created_at"), Value: collection.Timestamp(d.CreatedAt)},
				{Label: s.i18n.FieldLabel(lang, "updated_at"), Value: collection.Timestamp(d.UpdatedAt)},
			}
		},
		verified: func(d *types.DonationOffer) bool { return d.Verified },
	}
}

// Volunteer offers carry no verification flag, so the table has no writer.
func (s *Service) volunteerOfferTable() *adminTable[*types.VolunteerOffer] {
	return &adminTable[*types.VolunteerOffer]{
		s:             s,
		slug:          "volunteers",
		titleKey:      "admin.volunteers",
		schema:        collection.VolunteerOfferSchema(s.pageSize()),
		source:        s.volunteersRepo,
		byID:          s.volunteersRepo.VolunteerOffer,
		exportColumns: collection.VolunteerOfferColumns,
		exportPrefix:  "volunteer-offers",
		columns: []adminColumn[*types.VolunteerOffer]{
			{Sort: "full_name", LabelKey: "field.full_name", Value: func(_ string, v *types.VolunteerOffer) string { return v.FullName }},
			{LabelKey: "field.phone_number", Value: func(_ string, v *types.VolunteerOffer) string { return v.PhoneNumber }},
			{LabelKey: "field.skills", Value: func(lang string, v *types.VolunteerOffer) string {
				return s.translateList(lang, "skill.", v.Skills)
			}},
			{Sort: "availability_start", LabelKey: "field.availability_start", Value: func(_ string, v *types.VolunteerOffer) string {
				return collection.OptDate(v.AvailabilityStart)
			}},
			{LabelKey: "field.availability_end", Value: func(_ string, v *types.VolunteerOffer) string {
				return collection.OptDate(v.AvailabilityEnd)
			}},
			{Sort: "created_at", LabelKey: "field.created_at", Value: func(_ string, v *types.VolunteerOffer) string {
				return collection.Timestamp(v.CreatedAt)
			}},
		},
		filters: []adminFilter{
			{Name: "skill", LabelKey: "admin.filter.skill", Values: types.VolunteerSkills, LabelPrefix: "skill."},
		},
		detail: func(lang string, v *types.VolunteerOffer) []types.AdminField {
			return []types.AdminField{
				{Label: s.i18n.FieldLabel(lang, "full_name"), Value: v.FullName},
				{Label: s.i18n.FieldLabel(lang, "phone_number"), Value: v.PhoneNumber},
				{Label: s.i18n.FieldLabel(lang, "skills"), Value: s.translateList(lang, "skill.", v.Skills)},
				{Label: s.i18n.FieldLabel(lang, "availability_start"), Value: collection.OptDate(v.AvailabilityStart)},
				{Label: s.i18n.FieldLabel(lang, "availability_end"), Value: collection.OptDate(v.AvailabilityEnd)},
				{Label: s.i18n.FieldLabel(lang, "created_at"), Value: collection.Timestamp(v.CreatedAt)},
			}
		},
	}
}

func (s *Service) translateList(lang, prefix string, values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = s.i18n.T(lang, prefix+v)
	}
	return strings.Join(out, ", ")
}
