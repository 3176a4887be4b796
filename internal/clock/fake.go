package clock

import (
	"sync"
	"time"
)

// FakeClock reloj fijo para pruebas; sólo avanza con Advance.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock crea un reloj detenido en t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now devuelve la hora actual del reloj.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance mueve el reloj d hacia adelante. Seguro entre goroutines.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
