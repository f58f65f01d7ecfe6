package valueobject

import "strings"

// MaxLocationSegments - форма "Город, Регион".
const MaxLocationSegments = 2

// NormalizeLocation оставляет первые два сегмента через запятую и обрезает пробелы.
// Пустая строка означает отсутствие локации.
//
// "Toronto, ON, Canada" -> "Toronto, ON"
func NormalizeLocation(raw string) string {
	parts := strings.Split(raw, ",")

	segments := make([]string, 0, MaxLocationSegments)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, part)
		if len(segments) == MaxLocationSegments {
			break
		}
	}
	return strings.Join(segments, ", ")
}

// NormalizeOptionalLocation работает с nullable полем: пустой результат превращается в nil.
func NormalizeOptionalLocation(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := NormalizeLocation(*raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}
