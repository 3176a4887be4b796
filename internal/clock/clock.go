// Package clock centraliza la noción de "hoy" para todo el servicio.
// Todas las comparaciones de fechas (devoluciones próximas, ventas del mes) usan la
// misma zona horaria configurada.
package clock

import (
	"fmt"
	"time"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// Today devuelve la fecha civil actual según c.
func Today(c Clock) time.Time {
	return entity.CivilDate(c.Now())
}

// SystemClock reloj del sistema en una zona fija.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock carga la zona IANA (ej. "America/Mexico_City"). Vacío = UTC.
func NewSystemClock(zone string) (*SystemClock, error) {
	if zone == "" {
		return &SystemClock{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock: zona %q: %w", zone, err)
	}
	return &SystemClock{loc: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location zona configurada.
func (c *SystemClock) Location() *time.Location {
	return c.loc
}
