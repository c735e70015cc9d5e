package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price is a fixed-point monetary amount stored as integer cents.
// Storing cents avoids binary-float rounding in the database and keeps
// equality filters exact. On the wire a price is always a two-decimal
// string, e.g. 2500 cents -> "25.00".
type Price int64

// maxPriceCents bounds prices below 100000.00 (seven significant digits,
// two of them fractional).
const maxPriceCents = 10_000_000

// Price parsing errors.
var (
	ErrPriceFormat   = errors.New("price must be a decimal number with at most two decimal places")
	ErrPriceNegative = errors.New("price must not be negative")
	ErrPriceTooLarge = errors.New("price must be less than 100000.00")
)

// ParsePrice parses a decimal string ("25", "25.5", "25.00") into a Price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrPriceFormat
	}

	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrPriceFormat
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrPriceFormat
	}

	var cents int64
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return 0, ErrPriceFormat
		}
		// "5" means 50 cents, "05" means 5 cents.
		padded := frac + strings.Repeat("0", 2-len(frac))
		fracCents, err := strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, ErrPriceFormat
		}
		cents = int64(fracCents)
	}

	if neg && (units != 0 || cents != 0) {
		return 0, ErrPriceNegative
	}
	// Checked before multiplying; units*100 must not overflow int64.
	if units >= maxPriceCents/100 {
		return 0, ErrPriceTooLarge
	}
	return Price(units*100 + cents), nil
}

// String renders the price as a two-decimal string, e.g. "25.00".
func (p Price) String() string {
	cents := int64(p)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Cents returns the raw cent value for storage.
func (p Price) Cents() int64 {
	return int64(p)
}

// MarshalJSON renders the price as a fixed-point decimal string rather
// than a binary float, to avoid rounding ambiguity on the wire.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON accepts either a JSON number (25, 25.5) or a decimal
// string ("25.00"). Scientific notation and more than two fraction
// digits are rejected.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return ErrPriceFormat
		}
		s = unquoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
