package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// Заголовки колонок CSV-выгрузки.
const (
	csvColCitizenID     = "CCCD"
	csvColFullName      = "Họ tên"
	csvColDateOfBirth   = "Ngày sinh"
	csvColPhoneNumber   = "Số điện thoại"
	csvColAddress       = "Địa chỉ"
	csvColPosition      = "Chức vụ"
	csvColWorkplaceName = "Nơi làm việc"
	csvColWorkplaceAddr = "Địa chỉ làm việc"
)

// ReadCSV разбирает CSV-выгрузку с заголовком и приводит строки
// к каноническим полям записи. Пустые строки пропускаются, строки
// с ошибкой разбора логируются и пропускаются. Ошибка возвращается
// только если файл не удалось прочитать целиком (в т.ч. нет заголовка).
func ReadCSV(r io.Reader, logger *slog.Logger) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV без заголовка: %w", ErrEmptySource)
		}
		return nil, fmt.Errorf("чтение заголовка CSV: %w", err)
	}
	index := headerIndex(header)

	batch := &Batch{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("Строка CSV пропущена",
					slog.Int("line", line),
					slog.String("error", err.Error()),
				)
				batch.Skipped++
				continue
			}
			return nil, fmt.Errorf("чтение CSV: %w", err)
		}

		if isBlankRow(row) {
			batch.Skipped++
			continue
		}
		batch.Rows = append(batch.Rows, csvRowFields(index, row))
	}

	return batch, nil
}

// csvRowFields приводит строку CSV к каноническим полям.
func csvRowFields(index map[string]int, row []string) model.Fields {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	address := get(csvColAddress)
	province, district := splitAddress(address)

	citizenID := get(csvColCitizenID)
	if citizenID == "" {
		citizenID = tempCitizenID()
	}

	fullName := get(csvColFullName)
	workplaceName := get(csvColWorkplaceName)

	return model.Fields{
		model.FieldCitizenID:      citizenID,
		model.FieldFullName:       fullName,
		model.FieldDateOfBirth:    get(csvColDateOfBirth),
		model.FieldPhoneNumber:    get(csvColPhoneNumber),
		model.FieldEmail:          synthesizeEmail(fullName),
		model.FieldAddress:        address,
		model.FieldStatus:         model.DefaultStatus,
		model.FieldProvinceCode:   province,
		model.FieldDistrictCode:   district,
		model.FieldCheckCode:      checkCode(citizenID),
		model.FieldDepartmentName: workplaceName,
		model.FieldPosition:       get(csvColPosition),
		model.FieldPromotionUnit:  workplaceName,
		model.FieldWorkplace:      get(csvColWorkplaceAddr),
	}
}

// headerIndex строит отображение "заголовок → номер колонки".
// При повторяющихся заголовках используется первая колонка.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = cleanHeader(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}
