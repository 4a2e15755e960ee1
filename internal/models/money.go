package models

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseMoney turns a display-formatted amount ("150,00€", "1.234,56",
// "1,234.56 $", "100") into a float64. The boolean reports whether the
// string parsed cleanly; on failure the value is 0 so malformed amounts
// degrade to zero instead of erroring.
//
// Separator rule: when both '.' and ',' appear, the rightmost one is the
// decimal separator and the other is a thousands separator. A lone comma
// followed by exactly two digits at the end is a decimal comma; any other
// comma is a thousands separator.
func ParseMoney(s string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.Map(dropCurrencyRune, s))
	if cleaned == "" {
		return 0, false
	}

	dot := strings.LastIndexByte(cleaned, '.')
	comma := strings.LastIndexByte(cleaned, ',')

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-comma-1 == 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case dot >= 0 && strings.Count(cleaned, ".") > 1:
		// Multiple dots can only be thousands separators.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func dropCurrencyRune(r rune) rune {
	if unicode.IsSpace(r) || r == '€' || r == '$' || r == '£' {
		return -1
	}
	return r
}
