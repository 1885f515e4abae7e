package model

import "testing"

func sampleRecord() *Record {
	r := NewRecord(Fields{
		FieldCitizenID:      "001099012345",
		FieldFullName:       "Nguyễn Văn An",
		FieldPhoneNumber:    "0912345678",
		FieldEmail:          "nguyen.van.an@example.com",
		FieldAddress:        "12 Láng Hạ - Đống Đa - Hà Nội",
		FieldProvinceCode:   "Hà Nội",
		FieldDistrictCode:   "Đống Đa",
		FieldDepartmentName: "Công an phường",
		FieldPosition:       "Cán bộ",
		FieldPromotionUnit:  "Sở Nội vụ",
		FieldWorkplace:      "Quận Ba Đình",
		FieldNotes:          "ghi chú",
	})
	return &r
}

// TestParseFilter проверяет приведение имени фильтра.
func TestParseFilter(t *testing.T) {
	tests := map[string]Filter{
		"cccd":        FilterCCCD,
		"phone":       FilterPhone,
		"name":        FilterName,
		"recruitment": FilterRecruitment,
		"address":     FilterAddress,
		"workplace":   FilterWorkplace,
		"all":         FilterAll,
		"":            FilterAll,
		"bogus":       FilterAll,
		"CCCD":        FilterAll,
	}
	for in, want := range tests {
		if got := ParseFilter(in); got != want {
			t.Errorf("ParseFilter(%q) = %q, ожидался %q", in, got, want)
		}
	}
}

// TestFilter_Matches проверяет набор полей каждого фильтра.
func TestFilter_Matches(t *testing.T) {
	r := sampleRecord()

	tests := []struct {
		filter Filter
		query  string
		want   bool
	}{
		{FilterCCCD, "0010990", true},
		{FilterCCCD, "0912", false},
		{FilterPhone, "0912", true},
		{FilterPhone, "001099", false},
		{FilterName, "văn an", true},
		{FilterName, "đống đa", false},
		{FilterRecruitment, "sở nội", true},
		{FilterRecruitment, "cán bộ", true},
		{FilterRecruitment, "láng hạ", false},
		{FilterAddress, "LÁNG HẠ", true},
		{FilterAddress, "hà nội", true},
		{FilterAddress, "ba đình", false},
		{FilterWorkplace, "ba đình", true},
		{FilterWorkplace, "công an", true},
		{FilterWorkplace, "cán bộ", false},
		{FilterAll, "example.com", true},
		{FilterAll, "cán bộ", true},
		// Заметки и управляющая организация не входят в набор all.
		{FilterAll, "ghi chú", false},
		{FilterAll, "sở nội vụ", false},
	}

	for _, tt := range tests {
		if got := tt.filter.Matches(r, tt.query); got != tt.want {
			t.Errorf("%s.Matches(%q) = %v, ожидалось %v", tt.filter, tt.query, got, tt.want)
		}
	}
}

// TestFilter_EmptyQuery проверяет, что пустой запрос совпадает всегда.
func TestFilter_EmptyQuery(t *testing.T) {
	empty := NewRecord(nil)
	for _, f := range []Filter{FilterCCCD, FilterPhone, FilterName, FilterRecruitment, FilterAddress, FilterWorkplace, FilterAll} {
		if !f.Matches(&empty, "") {
			t.Errorf("%s: пустой запрос должен совпадать с любой записью", f)
		}
	}
}
