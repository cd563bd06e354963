package dataprocessing

import (
	"strings"

	"pcreport/pkg/contracts/domain"
)

// vendorKeyword maps a filename token to a vendor. The table is ordered:
// more specific tokens come first ("여주" must win before "이수" matches the
// same Esue Yeoju filename).
type vendorKeyword struct {
	token  string
	vendor domain.Vendor
}

var vendorKeywords = []vendorKeyword{
	{"여주", domain.VendorEsueYeoju},
	{"이수", domain.VendorIsue},
	{"진성", domain.VendorJinsungPC},
	{"지산", domain.VendorJisan},
	{"나라", domain.VendorNaraPC},
	{"부산", domain.VendorBusanBGF},
	{"bgf", domain.VendorBusanBGF},
}

// DetectVendor classifies a report file by filename keywords, falling back
// to tokens in the directory path. Unrecognized files map to VendorUnknown,
// which dispatches to the permissive default profile.
func DetectVendor(meta domain.FileMetadata) domain.Vendor {
	if v, ok := matchVendorKeyword(meta.Name); ok {
		return v
	}
	if v, ok := matchVendorKeyword(meta.Path); ok {
		return v
	}
	return domain.VendorUnknown
}

func matchVendorKeyword(text string) (domain.Vendor, bool) {
	lower := strings.ToLower(text)
	for _, kw := range vendorKeywords {
		if strings.Contains(lower, kw.token) {
			return kw.vendor, true
		}
	}
	return domain.VendorUnknown, false
}

// Dispatch resolves the profile for a file. An explicit vendor choice (from
// a CLI flag or API request) overrides filename detection; the empty or
// unknown choice falls through to detection.
func Dispatch(meta domain.FileMetadata, explicit domain.Vendor) (*VendorProfile, domain.Vendor) {
	v := explicit
	if !v.IsKnown() {
		v = DetectVendor(meta)
	}
	return ProfileFor(v), v
}
