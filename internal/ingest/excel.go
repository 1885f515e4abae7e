package ingest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// excelDefaultStatus — статус строки Excel без "Current Status".
const excelDefaultStatus = "Active"

// excelColumns — заголовки колонок Excel-выгрузки и соответствующие поля записи.
var excelColumns = map[string]string{
	"Citizen ID/CCCD":      model.FieldCitizenID,
	"Full Name":            model.FieldFullName,
	"Date of Birth":        model.FieldDateOfBirth,
	"Phone Number":         model.FieldPhoneNumber,
	"Email":                model.FieldEmail,
	"Address":              model.FieldAddress,
	"Current Status":       model.FieldStatus,
	"Province Code":        model.FieldProvinceCode,
	"District Code":        model.FieldDistrictCode,
	"Check Code":           model.FieldCheckCode,
	"Department Name":      model.FieldDepartmentName,
	"Position":             model.FieldPosition,
	"Promotion Unit":       model.FieldPromotionUnit,
	"Workplace":            model.FieldWorkplace,
	"Notes":                model.FieldNotes,
	"Profile Status (HSL)": model.FieldProfileStatus,
}

// ReadExcel читает первый лист книги Excel. Первая строка — заголовок.
func ReadExcel(path string, logger *slog.Logger) (*Batch, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("открытие книги Excel: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Ошибка закрытия книги Excel",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("книга Excel без листов: %w", ErrEmptySource)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("чтение листа %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("лист %q без заголовка: %w", sheet, ErrEmptySource)
	}

	// номер колонки → каноническое поле
	columns := make(map[int]string, len(rows[0]))
	for i, h := range rows[0] {
		if field, ok := excelColumns[cleanHeader(h)]; ok {
			columns[i] = field
		}
	}

	batch := &Batch{}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			batch.Skipped++
			continue
		}

		fields := make(model.Fields, len(columns))
		for i, v := range row {
			if field, ok := columns[i]; ok {
				fields[field] = strings.TrimSpace(v)
			}
		}
		if fields[model.FieldStatus] == "" {
			fields[model.FieldStatus] = excelDefaultStatus
		}
		batch.Rows = append(batch.Rows, fields)
	}

	return batch, nil
}
