package entity

// Customer representa un cliente de la boutique.
// (Name, Phone) funciona como llave de deduplicación al registrar transacciones.
type Customer struct {
	ID      int64
	Name    string
	Address string
	Phone   string // sólo dígitos, 8 a 15
}

// ValidPhone indica si s tiene sólo dígitos y entre 8 y 15 caracteres.
func ValidPhone(s string) bool {
	if len(s) < 8 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
