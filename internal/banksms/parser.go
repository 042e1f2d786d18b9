// Package banksms extracts structured payment fields from unstructured
// bank SMS/push notification text.
package banksms

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/chasepay/processing-service/internal/domain"
)

// Parsed is the extraction result. Zero values mean "could not extract":
// a notification without a positive amount never matches a transaction,
// and an empty BankType never restricts the candidate search.
type Parsed struct {
	Amount     float64
	Balance    float64
	Card       string
	SenderName string
	BankName   string
	BankType   BankType
}

// Parse selects a bank pattern for the message and runs its per-field
// extractors. Selection order:
//  1. an SBP marker in the content wins unconditionally;
//  2. a package-name allowlist hit;
//  3. the first pattern with a case-insensitive alias substring hit;
//  4. the first pattern whose amount regex matches;
//  5. the generic fallback.
func Parse(message, packageName string) Parsed {
	p := selectPattern(message, packageName)

	out := Parsed{
		BankName: p.name,
		BankType: p.bankType,
	}
	out.Amount = extractAmount(p.amount, message)
	out.Balance = extractAmount(p.balance, message)
	out.Card = extractString(p.card, message)
	out.SenderName = extractString(p.sender, message)
	return out
}

func selectPattern(message, packageName string) *bankPattern {
	upper := strings.ToUpper(message)
	if strings.Contains(upper, "SBP") || strings.Contains(upper, "СБП") {
		return sbpPattern
	}

	if packageName != "" {
		for _, p := range bankPatterns {
			for _, pkg := range p.packageNames {
				if pkg == packageName {
					return p
				}
			}
		}
	}

	lower := strings.ToLower(message)
	for _, p := range bankPatterns {
		for _, alias := range p.aliases {
			if strings.Contains(lower, strings.ToLower(alias)) {
				return p
			}
		}
	}

	for _, p := range bankPatterns {
		for _, re := range p.amount {
			if re.MatchString(message) {
				return p
			}
		}
	}

	return genericPattern
}

// extractAmount tries each alternative in order until one yields a
// positive parsed amount.
func extractAmount(res []*regexp.Regexp, message string) float64 {
	for _, re := range res {
		m := re.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		if v := ParseAmount(m[1]); v > 0 {
			return v
		}
	}
	return 0
}

func extractString(res []*regexp.Regexp, message string) string {
	for _, re := range res {
		m := re.FindStringSubmatch(message)
		if len(m) >= 2 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// ParseAmount normalizes a captured money string: whitespace (thousands
// separators) stripped, comma accepted as the decimal separator, and the
// result truncated to two decimals. Non-numeric or non-positive input
// yields 0.
func ParseAmount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return domain.RoundDown2(v)
}
