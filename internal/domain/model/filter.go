package model

import "strings"

// Filter — именованный набор полей, по которым выполняется поиск.
type Filter string

const (
	FilterCCCD        Filter = "cccd"
	FilterPhone       Filter = "phone"
	FilterName        Filter = "name"
	FilterRecruitment Filter = "recruitment"
	FilterAddress     Filter = "address"
	FilterWorkplace   Filter = "workplace"
	FilterAll         Filter = "all"
)

// ParseFilter приводит имя фильтра к Filter.
// Неизвестные и пустые значения трактуются как FilterAll.
func ParseFilter(name string) Filter {
	switch f := Filter(name); f {
	case FilterCCCD, FilterPhone, FilterName, FilterRecruitment,
		FilterAddress, FilterWorkplace:
		return f
	default:
		return FilterAll
	}
}

// Fields возвращает значения полей записи, проверяемые фильтром.
func (f Filter) Fields(r *Record) []string {
	switch f {
	case FilterCCCD:
		return []string{r.CitizenID}
	case FilterPhone:
		return []string{r.PhoneNumber}
	case FilterName:
		return []string{r.FullName}
	case FilterRecruitment:
		return []string{r.DepartmentName, r.Position, r.PromotionUnit, r.Workplace}
	case FilterAddress:
		return []string{r.Address, r.ProvinceCode, r.DistrictCode}
	case FilterWorkplace:
		return []string{r.Workplace, r.DepartmentName}
	default:
		return []string{
			r.CitizenID, r.FullName, r.PhoneNumber, r.Email,
			r.Address, r.Position, r.Workplace, r.DepartmentName,
		}
	}
}

// Matches проверяет, содержит ли хотя бы одно поле фильтра подстроку query
// без учёта регистра. Пустой query совпадает с любой записью.
func (f Filter) Matches(r *Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range f.Fields(r) {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
