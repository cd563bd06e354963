package dataprocessing

import (
	"regexp"
	"strings"

	"pcreport/pkg/contracts/domain"
)

// VendorProfile is the declarative per-factory configuration that drives
// header detection and row validation. One generalized engine parameterized
// by these records replaces the original per-vendor parsers; every distinct
// heuristic survives here as data. Profiles are immutable once defined.
type VendorProfile struct {
	Vendor      domain.Vendor
	DisplayName string

	// AssemblyMarkers and QuantityMarkers are lower-cased header synonyms
	// matched by containment against cell text.
	AssemblyMarkers []string
	QuantityMarkers []string

	// QuantitySubLabel, when set, marks a two-row combined header: the
	// quantity marker is a category label and the real quantity column is
	// the one carrying this sub-label in the row immediately below.
	QuantitySubLabel string

	// IDPattern, when non-nil, is the strict assembly-id shape; rows whose
	// id does not match are rejected. Nil accepts any non-excluded string.
	IDPattern *regexp.Regexp

	// FallbackIDPattern locates the id column when no marker is found
	// anywhere: the first matching cell's column is the id column and the
	// row above it is the header row.
	FallbackIDPattern *regexp.Regexp

	// ExtraExclusions extends the shared subtotal/total keyword set with
	// vendor-specific stray header text.
	ExtraExclusions []string

	// SkipSheetNames excludes template and retired sheets by name token.
	SkipSheetNames []string

	// MultiSheet processes every sheet of the workbook instead of only the
	// first; PerSheetDates re-resolves the date per sheet (daily tabs).
	MultiSheet    bool
	PerSheetDates bool

	// RecoverQuantity scans the rest of a row for a positive number when
	// the assumed quantity column yields nothing usable.
	RecoverQuantity bool

	// QuantityOffsetMin/Max bound the guessed distance from the id column
	// to the quantity column during pattern fallback. Template-specific
	// tribal knowledge; do not generalize.
	QuantityOffsetMin int
	QuantityOffsetMax int

	// Hard defaults used when both marker and pattern search fail. The
	// locator always returns some position.
	DefaultHeaderRow   int
	DefaultAssemblyCol int
	DefaultQuantityCol int
}

// baseExclusions are the subtotal/total keywords no vendor's data rows may
// carry. Matched case-insensitively by containment.
var baseExclusions = []string{"소계", "합계", "total", "subtotal"}

// IsExcluded reports whether an assembly-id cell is a subtotal/total row or
// vendor-specific stray header rather than data.
func (p *VendorProfile) IsExcluded(assemblyID string) bool {
	lower := strings.ToLower(assemblyID)
	for _, kw := range baseExclusions {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range p.ExtraExclusions {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ValidID reports whether the id matches the profile's strict shape, when
// one is defined.
func (p *VendorProfile) ValidID(assemblyID string) bool {
	if p.IDPattern == nil {
		return true
	}
	return p.IDPattern.MatchString(assemblyID)
}

// SkipSheet reports whether a sheet name marks a template or retired sheet.
func (p *VendorProfile) SkipSheet(sheetName string) bool {
	for _, token := range p.SkipSheetNames {
		if strings.Contains(sheetName, token) {
			return true
		}
	}
	return false
}

var (
	// Shape NNN-NNN-NNNN used by the Isue Eumseong plant.
	idShapeIsue = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	// Shape NN-NNN-NNNN, optionally letter-prefixed, seen at Nara PC and
	// Esue Yeoju.
	idShapeShort = regexp.MustCompile(`^[A-Za-z]?\d{2,3}-\d{3}-\d{4}$`)
)

// templateSheetNames are sheet-name tokens that mark non-data sheets across
// the multi-sheet vendors.
var templateSheetNames = []string{"사용금지", "미사용", "양식", "폐기"}

var profiles = map[domain.Vendor]*VendorProfile{
	domain.VendorJinsungPC: {
		Vendor:             domain.VendorJinsungPC,
		DisplayName:        "진성피씨",
		AssemblyMarkers:    []string{"부재"},
		QuantityMarkers:    []string{"생산잔량", "생산수량"},
		FallbackIDPattern:  idShapeShort,
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  6,
		DefaultHeaderRow:   1,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 5, // column F
	},
	domain.VendorIsue: {
		Vendor:             domain.VendorIsue,
		DisplayName:        "이수이앤씨 음성공장",
		AssemblyMarkers:    []string{"부재번호"},
		QuantityMarkers:    []string{"수량(매)"},
		QuantitySubLabel:   "금일",
		IDPattern:          idShapeIsue,
		FallbackIDPattern:  idShapeIsue,
		ExtraExclusions:    []string{"제품명", "페이지"},
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  6,
		DefaultHeaderRow:   1,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 4, // column E
	},
	domain.VendorEsueYeoju: {
		Vendor:             domain.VendorEsueYeoju,
		DisplayName:        "이수이앤씨 여주공장",
		AssemblyMarkers:    []string{"부재번호", "품번", "assy", "자재", "파트넘버", "부품번호"},
		QuantityMarkers:    []string{"생산잔량", "생산량", "생산", "수량"},
		FallbackIDPattern:  idShapeShort,
		SkipSheetNames:     templateSheetNames,
		MultiSheet:         true,
		PerSheetDates:      true,
		RecoverQuantity:    true,
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  5,
		DefaultHeaderRow:   1,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 4, // column E
	},
	domain.VendorJisan: {
		Vendor:             domain.VendorJisan,
		DisplayName:        "지산개발",
		AssemblyMarkers:    []string{"제품번호"},
		QuantityMarkers:    []string{"수량"},
		FallbackIDPattern:  idShapeShort,
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  4,
		DefaultHeaderRow:   0,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 3, // column D
	},
	domain.VendorNaraPC: {
		Vendor:             domain.VendorNaraPC,
		DisplayName:        "나라피씨",
		AssemblyMarkers:    []string{"부재번호", "품번", "assy", "자재코드"},
		QuantityMarkers:    []string{"생산량", "생산수량", "투입수량", "수량"},
		FallbackIDPattern:  idShapeShort,
		SkipSheetNames:     templateSheetNames,
		MultiSheet:         true,
		PerSheetDates:      true,
		RecoverQuantity:    true,
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  5,
		DefaultHeaderRow:   0,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 3, // column D
	},
	domain.VendorBusanBGF: {
		Vendor:             domain.VendorBusanBGF,
		DisplayName:        "부산BGF 물류",
		AssemblyMarkers:    []string{"부재번호", "assembly"},
		QuantityMarkers:    []string{"수량", "quantity"},
		FallbackIDPattern:  idShapeShort,
		QuantityOffsetMin:  2,
		QuantityOffsetMax:  6,
		DefaultHeaderRow:   0,
		DefaultAssemblyCol: 1, // column B
		DefaultQuantityCol: 2, // column C
	},
}

// defaultProfile is the best-effort configuration for unrecognized files.
var defaultProfile = &VendorProfile{
	Vendor:             domain.VendorUnknown,
	DisplayName:        "기본",
	AssemblyMarkers:    []string{"부재번호", "assem-bly no.", "부재"},
	QuantityMarkers:    []string{"수량", "qty"},
	FallbackIDPattern:  idShapeShort,
	RecoverQuantity:    true,
	QuantityOffsetMin:  2,
	QuantityOffsetMax:  6,
	DefaultHeaderRow:   0,
	DefaultAssemblyCol: 1, // column B
	DefaultQuantityCol: 4, // column E
}

// ProfileFor returns the profile for a vendor tag, or the default profile
// for unknown tags.
func ProfileFor(v domain.Vendor) *VendorProfile {
	if p, ok := profiles[v]; ok {
		return p
	}
	return defaultProfile
}
