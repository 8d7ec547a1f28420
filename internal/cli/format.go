// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/model"
)

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatTokens(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCost formats a USD cost value. Sub-cent values keep enough digits to
// stay meaningful, since per-request costs are often fractions of a cent.
func FormatCost(cost float64) string {
	abs := math.Abs(cost)
	switch {
	case abs >= 1000:
		return "$" + FormatNumber(int64(math.Round(cost)))
	case abs == 0:
		return "$0.00"
	case abs < 0.01:
		return fmt.Sprintf("$%.6f", cost)
	case abs < 1:
		return fmt.Sprintf("$%.4f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatYen formats a JPY amount rounded to whole yen.
func FormatYen(yen float64) string {
	return "¥" + FormatNumber(int64(math.Round(yen)))
}

// FormatMoney formats a USD value, appending the yen amount when currency
// is JPY.
func FormatMoney(usd float64, currency model.Currency, exchangeRate float64) string {
	s := FormatCost(usd)
	if currency == model.CurrencyJPY {
		s += " (" + FormatYen(usd*exchangeRate) + ")"
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a cost delta with sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCost(delta)
	}
	return "-" + FormatCost(-delta)
}

// FormatMultiplier formats a growth multiplier, e.g. 1.5 -> "x1.50".
func FormatMultiplier(m float64) string {
	return fmt.Sprintf("x%.2f", m)
}

// LanguageName returns the display name of a language code.
func LanguageName(l model.Language) string {
	switch l {
	case model.LangJapanese:
		return "Japanese"
	case model.LangEnglish:
		return "English"
	case model.LangMixed:
		return "Mixed"
	}
	return string(l)
}
