package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"pcreport/pkg/contracts/domain"
)

// DateSource identifies where a date candidate was found. Higher values are
// more trustworthy: an explicit date written inside the document beats one
// guessed from a filename, which beats file metadata.
type DateSource int

const (
	SourceToday DateSource = iota
	SourceModTime
	SourceFilePath
	SourceFileName
	SourceSheetName
	SourceDocument
)

// String returns the source name used in logs.
func (s DateSource) String() string {
	switch s {
	case SourceDocument:
		return "document"
	case SourceSheetName:
		return "sheet_name"
	case SourceFileName:
		return "file_name"
	case SourceFilePath:
		return "file_path"
	case SourceModTime:
		return "mod_time"
	default:
		return "today"
	}
}

// DateCandidate is a transient (date, source) pair collected during
// resolution. Candidates are consumed by Resolve and discarded.
type DateCandidate struct {
	Date   string
	Source DateSource
}

// DateResolution is the single winning date for a file or sheet.
type DateResolution struct {
	Date     string
	Source   DateSource
	FellBack bool
}

// Reports are never dated further in the future than this; a candidate that
// would be is treated as a mis-read, not a date.
const maxFutureYears = 2

// documentScanRows bounds the in-document date scan. Titles and date cells
// sit at the top of every known vendor layout.
const documentScanRows = 50

var (
	reKoreanDate   = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
	reFullCompact  = regexp.MustCompile(`(20\d{2})(\d{2})(\d{2})`)
	reFullSep      = regexp.MustCompile(`(20\d{2})[-./_년\s]\s*(\d{1,2})[-./_월\s]\s*(\d{1,2})`)
	reShortYearSep = regexp.MustCompile(`\b(\d{2})[-./](\d{1,2})[-./](\d{1,2})\b`)
	reBareMMDD     = regexp.MustCompile(`\b(\d{2})(\d{2})\b`)
	rePathYearMon  = regexp.MustCompile(`(?:20)?(\d{2})년\s*(\d{1,2})월`)
	reDayToken     = regexp.MustCompile(`\b(\d{1,2})[\s_]`)
)

// DateResolver extracts one calendar date per file or sheet from competing
// weak evidence sources. The clock is injectable so the relative rules
// (previous-year MMDD, future rejection) stay testable.
type DateResolver struct {
	now func() time.Time
}

// NewDateResolver returns a resolver using the wall clock.
func NewDateResolver() *DateResolver {
	return &DateResolver{now: time.Now}
}

// NewDateResolverAt returns a resolver with a fixed clock.
func NewDateResolverAt(now time.Time) *DateResolver {
	return &DateResolver{now: func() time.Time { return now }}
}

// Resolve picks the single date for one sheet of one file. Candidate tiers,
// strongest first: in-document text, sheet name, filename, directory path,
// file modification time. Ties inside a tier go to the most recent calendar
// date. When every source fails validation the current date is used and
// FellBack is set.
func (r *DateResolver) Resolve(grid Grid, sheetName string, meta domain.FileMetadata) DateResolution {
	var candidates []DateCandidate

	candidates = append(candidates, r.fromDocument(grid)...)
	if d, ok := r.FromText(sheetName); ok {
		candidates = append(candidates, DateCandidate{Date: d, Source: SourceSheetName})
	}
	candidates = append(candidates, r.fromFileName(meta)...)
	if d, ok := r.FromText(meta.Path); ok {
		candidates = append(candidates, DateCandidate{Date: d, Source: SourceFilePath})
	}
	if !meta.LastModified.IsZero() {
		candidates = append(candidates, DateCandidate{
			Date:   meta.LastModified.Format("20060102"),
			Source: SourceModTime,
		})
	}

	if best, ok := pickWinner(candidates); ok {
		return DateResolution{Date: best.Date, Source: best.Source}
	}
	return DateResolution{
		Date:     r.now().Format("20060102"),
		Source:   SourceToday,
		FellBack: true,
	}
}

// pickWinner selects the highest-priority candidate, breaking ties within a
// tier by the most recent calendar date.
func pickWinner(candidates []DateCandidate) (DateCandidate, bool) {
	var best DateCandidate
	found := false
	for _, c := range candidates {
		if !found || c.Source > best.Source ||
			(c.Source == best.Source && c.Date > best.Date) {
			best = c
			found = true
		}
	}
	return best, found
}

// fromDocument scans the top of the grid, all columns, for any cell whose
// text yields a valid date.
func (r *DateResolver) fromDocument(grid Grid) []DateCandidate {
	var out []DateCandidate
	limit := grid.RowCount()
	if limit > documentScanRows {
		limit = documentScanRows
	}
	for i := 0; i < limit; i++ {
		row := grid.Row(i)
		for j := range row {
			cell, ok := grid.Cell(i, j)
			if !ok {
				continue
			}
			if d, ok := r.FromText(cell); ok {
				out = append(out, DateCandidate{Date: d, Source: SourceDocument})
			}
		}
	}
	return out
}

// fromFileName extracts candidates from the filename, including the combined
// path-year + filename-day form some factories use ("25년 3월/22 생산일보.xlsx").
func (r *DateResolver) fromFileName(meta domain.FileMetadata) []DateCandidate {
	var out []DateCandidate
	if d, ok := r.FromText(meta.Name); ok {
		out = append(out, DateCandidate{Date: d, Source: SourceFileName})
	}
	if d, ok := r.fromPathContext(meta); ok {
		out = append(out, DateCandidate{Date: d, Source: SourceFileName})
	}
	return out
}

// fromPathContext combines a "YY년 M월" token in the directory path with a
// bare day token in the filename.
func (r *DateResolver) fromPathContext(meta domain.FileMetadata) (string, bool) {
	ym := rePathYearMon.FindStringSubmatch(meta.Path)
	if ym == nil {
		return "", false
	}
	year, ok := r.expandYear(ym[1])
	if !ok {
		return "", false
	}
	month, _ := strconv.Atoi(ym[2])

	day := 0
	if m := reDayToken.FindStringSubmatch(meta.Name); m != nil {
		day, _ = strconv.Atoi(m[1])
	} else if m := reBareMMDD.FindStringSubmatch(meta.Name); m != nil {
		// Filename carries MMDD; trust the path for the year only.
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
	}
	if day == 0 {
		return "", false
	}
	return r.validate(year, month, day)
}

// FromText extracts a date from arbitrary text by trying each regex family
// in order of decreasing specificity. Returns the normalized YYYYMMDD form.
func (r *DateResolver) FromText(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if m := reKoreanDate.FindStringSubmatch(text); m != nil {
		if d, ok := r.validateStrings(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reFullCompact.FindStringSubmatch(text); m != nil {
		if d, ok := r.validateStrings(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reFullSep.FindStringSubmatch(text); m != nil {
		if d, ok := r.validateStrings(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reShortYearSep.FindStringSubmatch(text); m != nil {
		if year, ok := r.expandYear(m[1]); ok {
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			if d, ok := r.validate(year, month, day); ok {
				return d, true
			}
		}
	}
	if m := reBareMMDD.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if d, ok := r.resolveBareMMDD(month, day); ok {
			return d, true
		}
	}
	return "", false
}

// expandYear converts a 2-digit year to 20YY. An expansion landing more than
// maxFutureYears ahead means the token was not a year at all.
func (r *DateResolver) expandYear(yy string) (int, bool) {
	n, err := strconv.Atoi(yy)
	if err != nil {
		return 0, false
	}
	year := 2000 + n
	if year > r.now().Year()+maxFutureYears {
		return 0, false
	}
	return year, true
}

// resolveBareMMDD assigns a year to a bare month-day token. Reports are
// never dated in the future, so a month/day later than today belongs to
// last year.
func (r *DateResolver) resolveBareMMDD(month, day int) (string, bool) {
	now := r.now()
	year := now.Year()
	if month > int(now.Month()) || (month == int(now.Month()) && day > now.Day()) {
		year--
	}
	return r.validate(year, month, day)
}

func (r *DateResolver) validateStrings(y, m, d string) (string, bool) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	return r.validate(year, month, day)
}

// validate checks the triple against real calendar bounds (leap-aware via
// time.Date normalization) and the future window, then formats it.
func (r *DateResolver) validate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	if year < 2000 || year > r.now().Year()+maxFutureYears {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		// time.Date normalized an impossible day (e.g. Feb 30).
		return "", false
	}
	if t.After(r.now().AddDate(maxFutureYears, 0, 0)) {
		return "", false
	}
	return fmt.Sprintf("%04d%02d%02d", year, month, day), true
}
