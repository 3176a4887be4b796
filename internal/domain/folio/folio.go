// Package folio: generación del folio de transacción (identificador visible para el cliente).
// Formato: "VIO-" + 8 caracteres hexadecimales en mayúsculas (4 bytes de crypto/rand).
package folio

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Prefix antepuesto a todos los folios.
const Prefix = "VIO-"

const randomBytes = 4

var pattern = regexp.MustCompile(`^VIO-[0-9A-F]{8}$`)

// Generator produce folios nuevos. El motor de transacciones lo recibe por inyección
// para poder fijar la secuencia en pruebas.
type Generator interface {
	Next() (string, error)
}

// RandomGenerator genera folios desde una fuente criptográficamente aleatoria.
type RandomGenerator struct {
	src io.Reader
}

// NewRandomGenerator crea el generador sobre crypto/rand.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{src: rand.Reader}
}

// NewRandomGeneratorFrom usa src como fuente de bytes (pruebas).
func NewRandomGeneratorFrom(src io.Reader) *RandomGenerator {
	return &RandomGenerator{src: src}
}

// Next devuelve un folio nuevo. No verifica unicidad; eso lo hace el motor contra el store.
func (g *RandomGenerator) Next() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := io.ReadFull(g.src, buf); err != nil {
		return "", fmt.Errorf("folio: leer fuente aleatoria: %w", err)
	}
	return Prefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Valid indica si s tiene el formato de folio.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
