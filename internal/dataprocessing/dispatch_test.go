package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcreport/pkg/contracts/domain"
)

func TestDetectVendor(t *testing.T) {
	tests := []struct {
		name string
		meta domain.FileMetadata
		want domain.Vendor
	}{
		{
			name: "jinsung by filename",
			meta: domain.FileMetadata{Name: "진성 생산일보 0312.xlsx"},
			want: domain.VendorJinsungPC,
		},
		{
			name: "isue by filename",
			meta: domain.FileMetadata{Name: "이수 음성 생산실적.xlsx"},
			want: domain.VendorIsue,
		},
		{
			name: "yeoju wins over isue in the same name",
			meta: domain.FileMetadata{Name: "이수 여주공장 생산일보.xlsx"},
			want: domain.VendorEsueYeoju,
		},
		{
			name: "jisan by filename",
			meta: domain.FileMetadata{Name: "지산개발 일보.xlsx"},
			want: domain.VendorJisan,
		},
		{
			name: "nara by filename",
			meta: domain.FileMetadata{Name: "나라피씨_20250312.xlsx"},
			want: domain.VendorNaraPC,
		},
		{
			name: "bgf case-insensitive",
			meta: domain.FileMetadata{Name: "BGF 물류 생산.xlsx"},
			want: domain.VendorBusanBGF,
		},
		{
			name: "vendor from directory path",
			meta: domain.FileMetadata{Name: "0312.xlsx", Path: "/보고/진성피씨/0312.xlsx"},
			want: domain.VendorJinsungPC,
		},
		{
			name: "unrecognized",
			meta: domain.FileMetadata{Name: "생산일보.xlsx", Path: "/tmp/생산일보.xlsx"},
			want: domain.VendorUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectVendor(tt.meta))
		})
	}
}

func TestDispatch(t *testing.T) {
	meta := domain.FileMetadata{Name: "이수 생산일보.xlsx"}

	t.Run("explicit vendor overrides detection", func(t *testing.T) {
		p, v := Dispatch(meta, domain.VendorJisan)
		assert.Equal(t, domain.VendorJisan, v)
		assert.Equal(t, domain.VendorJisan, p.Vendor)
	})

	t.Run("unknown explicit falls back to detection", func(t *testing.T) {
		p, v := Dispatch(meta, domain.VendorUnknown)
		assert.Equal(t, domain.VendorIsue, v)
		assert.Equal(t, domain.VendorIsue, p.Vendor)
	})

	t.Run("nothing recognized uses the default profile", func(t *testing.T) {
		p, v := Dispatch(domain.FileMetadata{Name: "report.xlsx"}, "")
		assert.Equal(t, domain.VendorUnknown, v)
		assert.Equal(t, domain.VendorUnknown, p.Vendor)
	})
}
