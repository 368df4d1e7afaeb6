package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Column is one field of the flat export.
type Column[T Record] struct {
	Header string
	Value  func(T) string
}

const ListSeparator = "|"

// ExportRows returns the selected records of the current page, or the whole
// page when nothing is selected.
func (v *View[T]) ExportRows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.selection.Len() == 0 {
		out := make([]T, len(v.records))
		copy(out, v.records)
		return out
	}

	out := make([]T, 0, v.selection.Len())
	for _, r := range v.records {
		if v.selection.Has(r.RecordID()) {
			out = append(out, r)
		}
	}
	return out
}

// Export writes the export rows as CSV with a header line and returns the
// number of records written.
func (v *View[T]) Export(w io.Writer, columns []Column[T]) (int, error) {
	rows := v.ExportRows()

	if err := WriteCSV(w, columns, rows); err != nil {
		return 0, err
	}

	v.addNotice(LevelInfo, NoticeExportStarted)
	return len(rows), nil
}

func WriteCSV[T Record](w io.Writer, columns []Column[T], rows []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	line := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			line[i] = c.Value(r)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.RecordID(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename embeds the UTC export time, e.g.
// damage_reports_export_2024-05-01T10-30-00Z.csv
func ExportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", prefix, now.UTC().Format("2006-01-02T15-04-05Z"))
}

func JoinList(values []string) string {
	return strings.Join(values, ListSeparator)
}

func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func OptString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func OptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func OptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
