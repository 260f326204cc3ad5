package format

import "strings"

// ParseValor converts a raw amount cell to centavos. It accepts both the
// Brazilian convention ("1.234,56", "R$ 1.234,56") and plain decimal output
// ("1234.56", "1234.5", "1234"). The second return is false when the cell is
// empty or not a number; callers treat that as zero.
func ParseValor(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		neg = true
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return 0, false
	}

	intPart, fracPart, ok := splitDecimal(s)
	if !ok {
		return 0, false
	}

	var cents int64
	for _, c := range intPart {
		cents = cents*10 + int64(c-'0')
	}
	cents *= 100
	if len(fracPart) >= 1 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) == 2 {
		cents += int64(fracPart[1] - '0')
	}

	if neg {
		cents = -cents
	}
	return cents, true
}

// splitDecimal separates integer digits from fractional digits. The
// rightmost '.' or ',' is the decimal separator only when followed by one or
// two digits; every other '.' and ',' is a thousands separator.
func splitDecimal(s string) (intPart, fracPart string, ok bool) {
	sep := strings.LastIndexAny(s, ".,")
	if sep >= 0 {
		frac := s[sep+1:]
		if len(frac) == 1 || len(frac) == 2 {
			intPart = s[:sep]
			fracPart = frac
		} else {
			intPart = s
		}
	} else {
		intPart = s
	}

	intPart = strings.ReplaceAll(intPart, ".", "")
	intPart = strings.ReplaceAll(intPart, ",", "")
	if intPart == "" && fracPart == "" {
		return "", "", false
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	for _, c := range fracPart {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	return intPart, fracPart, true
}
