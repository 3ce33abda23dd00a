package csvimport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// HolidayDateLayouts are the accepted date formats, tried in order
var HolidayDateLayouts = []string{"2006-01-02", "01/02/2006"}

// HolidayRow is a validated holiday line. Observed defaults to true.
type HolidayRow struct {
	Line      int
	Name      string
	Date      time.Time
	Recurring bool
	Observed  bool
}

// HolidayFile is the result of reading a holiday CSV
type HolidayFile struct {
	Rows      []HolidayRow
	Errors    *ErrorCollection
	TotalRows int
}

// ParseHolidays reads `name,date[,recurring][,observed]`. Invalid rows and rows
// repeating an earlier date are reported in Errors and left out of Rows.
func ParseHolidays(r io.Reader, maxRows, maxErrors int) (*HolidayFile, error) {
	parser, err := NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders("name", "date"); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	out := &HolidayFile{Errors: NewErrorCollection(maxErrors)}
	seen := make(map[string]int)

	for {
		row, err := parser.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.TotalRows++
			out.Errors.Add(RowError{Row: parser.line, Code: ErrCodeImportMalformedRow, Message: err.Error()})
			continue
		}
		if row.IsEmpty() {
			continue
		}
		out.TotalRows++
		if maxRows > 0 && out.TotalRows > maxRows {
			out.Errors.Add(RowError{
				Row:     row.Line,
				Code:    ErrCodeImportTooManyRows,
				Message: fmt.Sprintf("file exceeds %d rows", maxRows),
			})
			break
		}

		h, ok := parseHolidayRow(row, out.Errors)
		if !ok {
			continue
		}
		key := h.Date.Format("2006-01-02")
		if first, dup := seen[key]; dup {
			out.Errors.AddDuplicate(row.Line, "date", fmt.Sprintf("%s (row %d)", key, first), false)
			continue
		}
		seen[key] = row.Line
		out.Rows = append(out.Rows, h)
	}

	if out.TotalRows == 0 {
		return nil, ErrNoDataRows
	}
	return out, nil
}

func parseHolidayRow(row *Row, errs *ErrorCollection) (HolidayRow, bool) {
	h := HolidayRow{Line: row.Line, Name: row.Get("name"), Observed: true}
	ok := true

	if h.Name == "" {
		errs.AddRequired(row.Line, "name")
		ok = false
	}

	raw := row.Get("date")
	if raw == "" {
		errs.AddRequired(row.Line, "date")
		ok = false
	} else if d, err := ParseHolidayDate(raw); err != nil {
		errs.AddFormat(row.Line, "date", strings.Join(HolidayDateLayouts, " or "), raw)
		ok = false
	} else {
		h.Date = d
	}

	for _, col := range []struct {
		name string
		dst  *bool
	}{{"recurring", &h.Recurring}, {"observed", &h.Observed}} {
		v := row.Get(col.name)
		if v == "" {
			continue
		}
		b, err := parseFlag(v)
		if err != nil {
			errs.AddFormat(row.Line, col.name, "true/false", v)
			ok = false
			continue
		}
		*col.dst = b
	}

	return h, ok
}

// ParseHolidayDate parses a date in one of HolidayDateLayouts as a UTC day
func ParseHolidayDate(s string) (time.Time, error) {
	for _, layout := range HolidayDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
