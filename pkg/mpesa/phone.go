package mpesa

import (
	"strings"
	"unicode"
)

// NormalizePhone приводит номер к формату 2547XXXXXXXX / 2541XXXXXXXX
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	d := b.String()

	switch {
	case len(d) == 12 && strings.HasPrefix(d, "254"):
	case len(d) == 10 && strings.HasPrefix(d, "0"):
		d = "254" + d[1:]
	case len(d) == 9:
		d = "254" + d
	default:
		return "", ErrInvalidPhone
	}

	if d[3] != '7' && d[3] != '1' {
		return "", ErrInvalidPhone
	}
	return d, nil
}
