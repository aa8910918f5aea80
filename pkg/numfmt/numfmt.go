// Package numfmt interpreta y formatea números en notación brasileña
// ("1.234,56") sin perder la notación con punto decimal ("2.5").
package numfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrNotNumeric indica que el texto no representa un número.
var ErrNotNumeric = errors.New("valor não numérico")

// Parse convierte un texto numérico tolerante a separadores locales.
//
//	"1.234,56" -> 1234.56
//	"2,50"     -> 2.50
//	"2.5"      -> 2.5
//	"1.234"    -> 1234 (grupo de milhar)
//	"0.500"    -> 0.5
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, ErrNotNumeric
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
		if sign == "+" {
			sign = ""
		}
	}

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		if strings.Count(s, ",") > 1 {
			return decimal.Zero, ErrNotNumeric
		}
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		if !thousandGroups(strings.Split(s, ".")) {
			return decimal.Zero, ErrNotNumeric
		}
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1:
		parts := strings.Split(s, ".")
		if parts[0] != "" && strings.TrimLeft(parts[0], "0") != "" && thousandGroups(parts) {
			s = parts[0] + parts[1]
		}
	}

	if !onlyDigits(s) {
		return decimal.Zero, ErrNotNumeric
	}
	d, err := decimal.NewFromString(sign + s)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	return d, nil
}

// ParseOr devuelve def cuando el texto está vacío o no es numérico.
func ParseOr(s string, def decimal.Decimal) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return def
	}
	return d
}

func thousandGroups(parts []string) bool {
	if len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

func onlyDigits(s string) bool {
	seenDigit := false
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return seenDigit
}

// Comma formatea con casas decimales fijas y coma decimal: 1 -> "1,00".
func Comma(d decimal.Decimal, places int32) string {
	return strings.Replace(d.StringFixed(places), ".", ",", 1)
}

// Flex acepta en JSON tanto números como textos ("2,5").
// Vacío cuando el campo no vino en el cuerpo.
type Flex string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *Flex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	// un número JSON siempre usa punto decimal
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotNumeric, b)
	}
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	*f = Flex(Comma(d, places))
	return nil
}

// Decimal interpreta el valor con Parse.
func (f Flex) Decimal() (decimal.Decimal, error) {
	return Parse(string(f))
}

// IsZero indica si el campo vino vacío.
func (f Flex) IsZero() bool { return strings.TrimSpace(string(f)) == "" }

var currencyCodes = map[string]string{
	"R$":  money.BRL,
	"$":   money.USD,
	"US$": money.USD,
	"€":   money.EUR,
}

// CurrencyCode traduce el símbolo configurado ("R$") al código ISO; los códigos ISO pasan tal cual.
func CurrencyCode(symbol string) string {
	if code, ok := currencyCodes[strings.TrimSpace(symbol)]; ok {
		return code
	}
	code := strings.ToUpper(strings.TrimSpace(symbol))
	if money.GetCurrency(code) == nil {
		return money.BRL
	}
	return code
}

// Money formatea un valor monetario con la moneda configurada: ("R$", 1234.56) -> "R$1.234,56".
func Money(amount decimal.Decimal, symbol string) string {
	cur := money.New(0, CurrencyCode(symbol)).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
