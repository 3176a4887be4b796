package entity

import "time"

// DateLayout formato de las fechas civiles en la API y en la base de datos.
const DateLayout = "2006-01-02"

// CivilDate normaliza t a su fecha de calendario (en la zona de t) a las 00:00 UTC.
// Todas las fechas persistidas y comparadas usan esta forma.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta "YYYY-MM-DD" como fecha civil.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formatea una fecha civil como "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr devuelve nil si t es nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
