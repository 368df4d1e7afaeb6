package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"homerelief/internal/collection"
	"homerelief/internal/i18n"
	"homerelief/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var createdBase = time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC)

// memoryReports serves damage reports newest first and understands equality
// filters on district.
type memoryReports struct {
	mu      sync.Mutex
	rows    []*types.DamageReport
	queries []collection.Query
}

func (m *memoryReports) Fetch(_ context.Context, q collection.Query) (*collection.Result[*types.DamageReport], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)

	var out []*types.DamageReport
	for _, r := range m.rows {
		keep := true
		for _, p := range q.Where {
			if p.Column == "district" && p.Value != r.District {
				keep = false
			}
		}
		if keep {
			cp := *r
			out = append(out, &cp)
		}
	}
	total := len(out)
	return &collection.Result[*types.DamageReport]{Records: out, Total: &total}, nil
}

func (m *memoryReports) byID(_ context.Context, id string) (*types.DamageReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, types.ErrRecordNotFound
}

type memoryDonors struct{}

func (memoryDonors) Fetch(context.Context, collection.Query) (*collection.Result[*types.DonationOffer], error) {
	return &collection.Result[*types.DonationOffer]{}, nil
}

type verifyCall struct {
	ids      []string
	verified bool
}

type recordingWriter struct {
	mu    sync.Mutex
	calls []verifyCall
}

func (w *recordingWriter) SetVerified(_ context.Context, ids []string, verified bool, _ time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, verifyCall{ids: ids, verified: verified})
	return nil
}

func testService(t *testing.T) *Service {
	t.Helper()

	bundle, err := i18n.New()
	require.NoError(t, err)

	templates, err := loadTemplates(bundle)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger:    logger,
		config:    &types.Config{},
		templates: templates,
		i18n:      bundle,
		views:     newViewRegistry(time.Minute),
	}
}

func sampleReports() []*types.DamageReport {
	return []*types.DamageReport{
		{ID: "r1", FullName: "Nimal Perera", PhoneNumber: "0771234567", District: "Colombo", DSDivision: "Kolonnawa",
			GNDivision: "Wellampitiya", DamageType: types.DamageTypeSevere, FamilyMembers: 4,
			EssentialNeeds: []string{"Cement", "Tools"}, CreatedAt: createdBase.Add(2 * time.Hour)},
		{ID: "r2", FullName: "Kamala Silva", PhoneNumber: "0712345678", District: "Gampaha", DSDivision: "Kelaniya",
			GNDivision: "Peliyagoda", DamageType: types.DamageTypeMinor, FamilyMembers: 2,
			EssentialNeeds: []string{"Wood"}, CreatedAt: createdBase.Add(time.Hour)},
	}
}

type adminFixture struct {
	svc     *Service
	source  *memoryReports
	writer  *recordingWriter
	handler http.Handler
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	svc := testService(t)
	source := &memoryReports{rows: sampleReports()}
	writer := &recordingWriter{}

	table := &adminTable[*types.DamageReport]{
		s:             svc,
		slug:          "reports",
		titleKey:      "admin.reports",
		schema:        collection.DamageReportSchema(10),
		source:        source,
		writer:        writer,
		byID:          source.byID,
		exportColumns: collection.DamageReportColumns,
		exportPrefix:  "damage-reports",
		columns: []adminColumn[*types.DamageReport]{
			{Sort: "full_name", LabelKey: "field.full_name", Value: func(_ string, d *types.DamageReport) string { return d.FullName }},
			{Sort: "district", LabelKey: "field.district", Value: func(_ string, d *types.DamageReport) string { return d.District }},
		},
		filters: []adminFilter{
			{Name: "district", LabelKey: "field.district", Values: []string{"Colombo", "Gampaha"}},
		},
		detail: func(_ string, d *types.DamageReport) []types.AdminField {
			return []types.AdminField{{Label: "Name", Value: d.FullName}}
		},
		mapURL:   (*types.DamageReport).MapURL,
		verified: func(d *types.DamageReport) bool { return d.Verified },
	}

	mux := flow.New()
	registerAdminTable(mux, table)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyUserID, "admin-1")
		ctx = context.WithValue(ctx, contextKeyIsAdmin, true)
		ctx = context.WithValue(ctx, contextKeyLang, "en")
		mux.ServeHTTP(w, r.WithContext(ctx))
	})

	return &adminFixture{svc: svc, source: source, writer: writer, handler: handler}
}
