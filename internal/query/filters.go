// Package query turns raw list-endpoint query parameters into a validated
// filter specification and applies it to gorm queries as bound-parameter
// predicates. Parsing is deliberately fail-open: malformed input degrades
// to a safe default instead of an error, so a broken filter still shows
// recent data.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page size when none is requested.
	DefaultLimit = 10
	// DefaultWindowDays is the trailing date window applied when no date
	// filter is given at all.
	DefaultWindowDays = 7
	// StatusScheduled is the sentinel status that also matches NULL and
	// empty status columns.
	StatusScheduled = "SCHEDULED"
)

// Spec is the validated filter/pagination state for one list request.
type Spec struct {
	PatientID    string
	AccessionNum string
	Modality     string
	Status       string
	SourceAE     string
	StartDate    int // YYYYMMDD, 0 when absent
	EndDate      int // YYYYMMDD, 0 when absent
	Page         int
	Limit        int
	All          bool // fetch every matching row, no pagination
}

// Columns maps Spec fields onto the column names of one list query. Empty
// entries disable the corresponding predicate. Values here are trusted
// code-side identifiers, never user input.
type Columns struct {
	PatientID string // substring match
	Accession string // substring match
	Modality  string // exact match
	Status    string // exact match with SCHEDULED sentinel handling
	SourceAE  string // exact match
	Date      string // YYYYMMDD integer column used for range + ordering
	Time      string // secondary ordering column
	Tiebreak  string // stable final ordering key
}

// Parse builds a Spec from raw query parameters using the current time for
// date defaulting.
func Parse(values url.Values) Spec {
	return ParseAt(values, time.Now())
}

// ParseAt is Parse with an explicit "today", for deterministic tests.
func ParseAt(values url.Values, now time.Time) Spec {
	s := Spec{
		PatientID:    strings.TrimSpace(values.Get("patient_id")),
		AccessionNum: strings.TrimSpace(values.Get("accession_num")),
		Modality:     strings.TrimSpace(values.Get("modality")),
		Status:       strings.TrimSpace(values.Get("status")),
		SourceAE:     strings.TrimSpace(values.Get("source_ae")),
		Page:         parsePositiveInt(values.Get("page"), 1),
		Limit:        parsePositiveInt(values.Get("limit"), DefaultLimit),
		All:          values.Get("limit") == "all",
	}

	s.StartDate = NormalizeDate(values.Get("start_date"))
	s.EndDate = NormalizeDate(values.Get("end_date"))

	// A month/year window takes precedence over explicit start/end dates.
	if start, end, ok := monthYearWindow(values.Get("year"), values.Get("month")); ok {
		s.StartDate, s.EndDate = start, end
	}

	// Default to the trailing window ending today unless the caller asked
	// for all time explicitly.
	if s.StartDate == 0 && s.EndDate == 0 && values.Get("all_dates") == "" {
		s.StartDate = dateInt(now.AddDate(0, 0, -DefaultWindowDays))
		s.EndDate = dateInt(now)
	}

	return s
}

// NormalizeDate converts "YYYY-MM-DD" or "YYYYMMDD" (or any separator
// variant) to a YYYYMMDD integer. Anything that does not reduce to exactly
// 8 digits is treated as absent and returns 0.
func NormalizeDate(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 8 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// Offset is the row offset for the current page. Only meaningful when All
// is false.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.Limit
}

// CurrentPage is the page number to report back to the client.
func (s Spec) CurrentPage() int {
	if s.All {
		return 1
	}
	return s.Page
}

// TotalPages computes the page count for a filtered total.
func (s Spec) TotalPages(totalCount int64) int {
	if s.All {
		return 1
	}
	return int((totalCount + int64(s.Limit) - 1) / int64(s.Limit))
}

// Scope returns a gorm scope applying every non-empty filter as an ANDed
// bound-parameter predicate against the given column mapping.
func (s Spec) Scope(cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.PatientID != "" && cols.PatientID != "" {
			db = db.Where(cols.PatientID+" ILIKE ?", "%"+s.PatientID+"%")
		}
		if s.AccessionNum != "" && cols.Accession != "" {
			db = db.Where(cols.Accession+" ILIKE ?", "%"+s.AccessionNum+"%")
		}
		if s.Modality != "" && cols.Modality != "" {
			db = db.Where(cols.Modality+" = ?", s.Modality)
		}
		if s.SourceAE != "" && cols.SourceAE != "" {
			db = db.Where(cols.SourceAE+" = ?", s.SourceAE)
		}
		if s.Status != "" && cols.Status != "" {
			if s.Status == StatusScheduled {
				// NULL and empty statuses count as scheduled.
				db = db.Where(
					fmt.Sprintf("(%s IS NULL OR %s = '' OR %s = ?)", cols.Status, cols.Status, cols.Status),
					StatusScheduled,
				)
			} else {
				db = db.Where(cols.Status+" = ?", s.Status)
			}
		}
		if s.StartDate != 0 && cols.Date != "" {
			db = db.Where(cols.Date+" >= ?", s.StartDate)
		}
		if s.EndDate != 0 && cols.Date != "" {
			db = db.Where(cols.Date+" <= ?", s.EndDate)
		}
		return db
	}
}

// Paginate returns a gorm scope applying the fixed ordering (date/time
// descending plus a stable tiebreak) and, unless fetch-all was requested,
// the page window.
func (s Spec) Paginate(cols Columns) func(*gorm.DB) *gorm.DB {
	order := fmt.Sprintf("%s DESC, %s DESC", cols.Date, cols.Time)
	if cols.Tiebreak != "" {
		order += ", " + cols.Tiebreak
	}
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(order)
		if s.All {
			return db
		}
		return db.Limit(s.Limit).Offset(s.Offset())
	}
}

// Values serializes the Spec back into canonical query parameters.
// Parsing the result yields the same spec, and empty fields are never
// emitted.
func (s Spec) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "patient_id", s.PatientID)
	setNonEmpty(v, "accession_num", s.AccessionNum)
	setNonEmpty(v, "modality", s.Modality)
	setNonEmpty(v, "status", s.Status)
	setNonEmpty(v, "source_ae", s.SourceAE)
	if s.StartDate != 0 {
		v.Set("start_date", strconv.Itoa(s.StartDate))
	}
	if s.EndDate != 0 {
		v.Set("end_date", strconv.Itoa(s.EndDate))
	}
	if s.StartDate == 0 && s.EndDate == 0 {
		v.Set("all_dates", "1")
	}
	v.Set("page", strconv.Itoa(s.Page))
	if s.All {
		v.Set("limit", "all")
	} else {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// monthYearWindow computes the window for year/month inputs. Month alone
// is ignored; an out-of-range month falls back to the whole year.
func monthYearWindow(yearStr, monthStr string) (start, end int, ok bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1900 || year > 9999 {
		return 0, 0, false
	}

	month, err := strconv.Atoi(monthStr)
	if err == nil && month >= 1 && month <= 12 {
		start = year*10000 + month*100 + 1
		end = year*10000 + month*100 + daysInMonth(year, month)
		return start, end, true
	}

	return year*10000 + 101, year*10000 + 1231, true
}

func daysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateInt(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
