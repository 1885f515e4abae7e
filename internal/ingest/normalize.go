package ingest

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// emailDomain — домен синтетических адресов почты.
const emailDomain = "example.com"

// checkCodeLength — длина контрольного кода (хвост CCCD).
const checkCodeLength = 6

var lowerVI = cases.Lower(language.Vietnamese)

// splitAddress выделяет провинцию и район из адреса вида
// "улица - район - провинция". Провинция — последняя часть,
// район — предпоследняя. Меньше двух частей — пустые значения.
func splitAddress(address string) (province, district string) {
	parts := strings.Split(address, "-")
	if len(parts) < 2 {
		return "", ""
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts[len(parts)-1], parts[len(parts)-2]
}

// stripDiacritics убирает диакритику: NFD, удаление combining marks, NFC.
// Буква đ не раскладывается в NFD и заменяется вручную.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}

// synthesizeEmail строит адрес почты из ФИО:
// "Nguyễn Văn An" → "nguyen.van.an@example.com".
// Пустой результат, если после очистки не осталось символов.
func synthesizeEmail(fullName string) string {
	name := stripDiacritics(lowerVI.String(strings.TrimSpace(fullName)))

	var b strings.Builder
	lastDot := true
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			if !lastDot {
				b.WriteByte('.')
				lastDot = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDot = false
		case r == '.':
			if !lastDot {
				b.WriteByte('.')
				lastDot = true
			}
		}
	}

	local := strings.TrimRight(b.String(), ".")
	if local == "" {
		return ""
	}
	return local + "@" + emailDomain
}

// tempCitizenID генерирует временный CCCD для строк без номера.
func tempCitizenID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TEMP-" + id[:8]
}

// checkCode возвращает последние checkCodeLength символов CCCD.
func checkCode(citizenID string) string {
	r := []rune(citizenID)
	if len(r) <= checkCodeLength {
		return citizenID
	}
	return string(r[len(r)-checkCodeLength:])
}

// isBlankRow — все ячейки строки пустые.
func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cleanHeader нормализует заголовок колонки: BOM, пробелы по краям, NFC.
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(h))
}
