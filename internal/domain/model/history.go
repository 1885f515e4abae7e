package model

import "time"

// DefaultFilter — фильтр поиска, если клиент его не указал.
const DefaultFilter = "all"

// SearchHistoryEntry — запись журнала поиска.
// Снимок полей берётся из первого результата поиска,
// при пустом результате поля снимка — пустые строки.
type SearchHistoryEntry struct {
	// ID — синтетический идентификатор (независимый счётчик)
	ID int64 `json:"id"`
	// SearchTime — время выполнения поиска
	SearchTime time.Time `json:"searchTime"`
	// SearchQuery — строка запроса как есть
	SearchQuery string `json:"searchQuery"`
	// SearchFilter — имя фильтра
	SearchFilter string `json:"searchFilter"`
	// CitizenID — CCCD первого результата
	CitizenID string `json:"citizenId"`
	// FullName — ФИО первого результата
	FullName string `json:"fullName"`
	// DateOfBirth — дата рождения первого результата
	DateOfBirth string `json:"dateOfBirth"`
	// District — район первого результата (DistrictCode записи)
	District string `json:"district"`
	// PhoneNumber — телефон первого результата
	PhoneNumber string `json:"phoneNumber"`
}

// NewSearchHistoryEntry строит запись журнала по запросу и первому результату.
// top может быть nil.
func NewSearchHistoryEntry(query, filter string, top *Record) SearchHistoryEntry {
	if filter == "" {
		filter = DefaultFilter
	}

	entry := SearchHistoryEntry{
		SearchQuery:  query,
		SearchFilter: filter,
	}
	if top != nil {
		entry.CitizenID = top.CitizenID
		entry.FullName = top.FullName
		entry.DateOfBirth = top.DateOfBirth
		entry.District = top.DistrictCode
		entry.PhoneNumber = top.PhoneNumber
	}
	return entry
}
