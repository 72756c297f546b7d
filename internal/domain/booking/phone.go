package booking

import (
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

// PhoneDigits é o tamanho de um celular com DDD (ex.: 11987654321).
const PhoneDigits = 11

// NormalizePhone remove tudo que não é dígito e exige 11 dígitos.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != PhoneDigits {
		return "", httperr.ErrValidation(CodeInvalidPhone)
	}
	return digits, nil
}
