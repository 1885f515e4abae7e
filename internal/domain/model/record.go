// Пакет model — доменные модели Citizen Lookup.
// Record — профиль гражданина, загруженный из CSV/Excel.
// SearchHistoryEntry — запись журнала поисковых запросов.
package model

import "time"

// DefaultStatus — статус записи, если источник его не задал.
const DefaultStatus = "active"

// Канонические имена полей записи. Адаптеры импорта приводят
// колонки источника к этим ключам перед вставкой в хранилище.
const (
	FieldCitizenID      = "citizenId"
	FieldFullName       = "fullName"
	FieldDateOfBirth    = "dateOfBirth"
	FieldPhoneNumber    = "phoneNumber"
	FieldEmail          = "email"
	FieldAddress        = "address"
	FieldStatus         = "status"
	FieldProvinceCode   = "provinceCode"
	FieldDistrictCode   = "districtCode"
	FieldCheckCode      = "checkCode"
	FieldDepartmentName = "departmentName"
	FieldPosition       = "position"
	FieldPromotionUnit  = "promotionUnit"
	FieldWorkplace      = "workplace"
	FieldNotes          = "notes"
	FieldProfileStatus  = "profileStatus"
)

// Fields — сырой набор полей записи (ключ — каноническое имя поля).
// Отсутствующие ключи при вставке заменяются пустой строкой.
type Fields map[string]string

// Record — профиль гражданина в in-memory хранилище.
type Record struct {
	// ID — синтетический идентификатор, строго возрастает с 1
	ID int64 `json:"id"`
	// CreatedAt — время вставки в хранилище
	CreatedAt time.Time `json:"createdAt"`
	// CitizenID — номер CCCD (уникальность не проверяется)
	CitizenID string `json:"citizenId"`
	// FullName — ФИО
	FullName string `json:"fullName"`
	// DateOfBirth — дата рождения в формате источника (без валидации)
	DateOfBirth string `json:"dateOfBirth"`
	// PhoneNumber — номер телефона
	PhoneNumber string `json:"phoneNumber"`
	// Email — адрес электронной почты
	Email string `json:"email"`
	// Address — адрес проживания
	Address string `json:"address"`
	// Status — произвольный статус, по умолчанию "active"
	Status string `json:"status"`
	// ProvinceCode — провинция (код или название)
	ProvinceCode string `json:"provinceCode"`
	// DistrictCode — район (код или название)
	DistrictCode string `json:"districtCode"`
	// CheckCode — контрольный код
	CheckCode string `json:"checkCode"`
	// DepartmentName — название подразделения
	DepartmentName string `json:"departmentName"`
	// Position — должность
	Position string `json:"position"`
	// PromotionUnit — управляющая организация
	PromotionUnit string `json:"promotionUnit"`
	// Workplace — место работы
	Workplace string `json:"workplace"`
	// Notes — примечания (опционально)
	Notes string `json:"notes,omitempty"`
	// ProfileStatus — статус анкеты (опционально)
	ProfileStatus string `json:"profileStatus,omitempty"`
}

// NewRecord собирает запись из сырых полей. Отсутствующие поля
// становятся пустыми строками, пустой статус — DefaultStatus.
// ID и CreatedAt назначает хранилище.
func NewRecord(fields Fields) Record {
	status := fields[FieldStatus]
	if status == "" {
		status = DefaultStatus
	}

	return Record{
		CitizenID:      fields[FieldCitizenID],
		FullName:       fields[FieldFullName],
		DateOfBirth:    fields[FieldDateOfBirth],
		PhoneNumber:    fields[FieldPhoneNumber],
		Email:          fields[FieldEmail],
		Address:        fields[FieldAddress],
		Status:         status,
		ProvinceCode:   fields[FieldProvinceCode],
		DistrictCode:   fields[FieldDistrictCode],
		CheckCode:      fields[FieldCheckCode],
		DepartmentName: fields[FieldDepartmentName],
		Position:       fields[FieldPosition],
		PromotionUnit:  fields[FieldPromotionUnit],
		Workplace:      fields[FieldWorkplace],
		Notes:          fields[FieldNotes],
		ProfileStatus:  fields[FieldProfileStatus],
	}
}
