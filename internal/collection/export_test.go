package collection_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"homerelief/internal/collection"
	"homerelief/pkg/types"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportSelectedRowsOnCurrentPage(t *testing.T) {
	v := newReportView(t, newMemorySource(sampleReports(5)), nil)
	require.NoError(t, v.Refresh(context.Background()))

	v.Select("r01")
	v.Select("r03")
	v.Select("not-on-page")

	var buf bytes.Buffer
	n, err := v.Export(&buf, collection.DamageReportColumns)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	rows := readCSV(t, &buf)
	require.Len(t, rows, 3)
	require.Equal(t, []string{
		"id", "full_name", "phone_number", "district", "ds_division", "gn_division", "damage_type",
		"family_members", "essential_needs", "verified", "created_at", "updated_at", "latitude",
		"longitude", "photo_url",
	}, rows[0])

	ids := []string{rows[1][0], rows[2][0]}
	require.ElementsMatch(t, []string{"r01", "r03"}, ids)

	notices := v.TakeNotices()
	require.Equal(t, collection.NoticeExportStarted, notices[len(notices)-1].Key)
}

func TestExportWholePageWhenNothingSelected(t *testing.T) {
	v := newReportView(t, newMemorySource(sampleReports(14)), nil)
	require.NoError(t, v.Refresh(context.Background()))

	var buf bytes.Buffer
	n, err := v.Export(&buf, collection.DamageReportColumns)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Len(t, readCSV(t, &buf), 11)
}

func TestExportFormatsFields(t *testing.T) {
	lat, lng := 7.2906, 80.6337
	photo := "https://cdn.example.org/victim-photos/abc.jpg"
	rows := []*types.DamageReport{
		{
			ID: "a", FullName: "Nimal, Perera", District: "Kandy", DamageType: types.DamageTypeTotalLoss,
			FamilyMembers: 4, EssentialNeeds: []string{"Roof sheets", "Cement"}, Verified: true,
			Latitude: &lat, Longitude: &lng, PhotoURL: &photo,
			CreatedAt: baseTime, UpdatedAt: baseTime,
		},
		{ID: "b", FullName: "Kumari", DamageType: types.DamageTypeMinor, FamilyMembers: 1, CreatedAt: baseTime.Add(-time.Hour)},
	}

	v := newReportView(t, newMemorySource(rows), nil)
	require.NoError(t, v.Refresh(context.Background()))

	var buf bytes.Buffer
	_, err := v.Export(&buf, collection.DamageReportColumns)
	require.NoError(t, err)

	out := readCSV(t, &buf)
	require.Equal(t, []string{
		"a", "Nimal, Perera", "", "Kandy", "", "", "total_loss", "4", "Roof sheets|Cement", "yes",
		"2024-11-20T08:00:00Z", "2024-11-20T08:00:00Z", "7.2906", "80.6337", photo,
	}, out[1])
	require.Equal(t, "", out[2][8])
	require.Equal(t, "no", out[2][9])
	require.Equal(t, "", out[2][12])
	require.Equal(t, "", out[2][14])
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 5, 1, 16, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	require.Equal(t, "damage_reports_export_2024-05-01T10-30-00Z.csv", collection.ExportFilename("damage_reports", at))
}

func TestVolunteerColumns(t *testing.T) {
	start := time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)
	rec := &types.VolunteerOffer{ID: "v1", FullName: "Ravi", Skills: []string{"masonry", "general"}, AvailabilityStart: &start}

	var buf bytes.Buffer
	require.NoError(t, collection.WriteCSV(&buf, collection.VolunteerOfferColumns, []*types.VolunteerOffer{rec}))

	out := readCSV(t, &buf)
	require.Equal(t, []string{"v1", "Ravi", "", "masonry|general", "2024-12-02", "", ""}, out[1])
}
