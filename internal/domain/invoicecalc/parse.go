package invoicecalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dígitos arábigo-orientales y persas, separador decimal (٫) y de miles (٬) usados en el teclado árabe.
// La coma ASCII no se traduce: corta el prefijo numérico igual que parseFloat ("2,5" = 2).
var digitReplacer = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".", "٬", "",
)

// Exponente máximo aceptado; uno mayor no forma parte del prefijo ("1e999" = 1).
const maxExponent = 308

// ParseNumber convierte el texto de una celda a número sin fallar nunca:
// toma el prefijo numérico más largo ("12abc" = 12, "1e3" = 1000) y un texto sin número vale 0.
func ParseNumber(raw string) decimal.Decimal {
	s := digitReplacer.Replace(strings.TrimSpace(raw))
	end := numericPrefix(s)
	if end == 0 {
		return decimal.Zero
	}
	num := strings.TrimPrefix(s[:end], "+")
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNonNegative como ParseNumber pero los negativos valen 0 (cantidad, precio, descuento, impuesto).
func ParseNonNegative(raw string) decimal.Decimal {
	d := ParseNumber(raw)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// numericPrefix longitud del prefijo con forma [+-]?digits[.digits][e[+-]digits] (requiere al menos
// un dígito en la mantisa). Un punto final sin decimales queda fuera del prefijo.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return i + exponentPrefix(s[i:])
}

// exponentPrefix longitud de un exponente válido al inicio de s, o 0.
func exponentPrefix(s string) int {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	j := 1
	if s[j] == '+' || s[j] == '-' {
		j++
	}
	start, exp := j, 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		if exp <= maxExponent {
			exp = exp*10 + int(s[j]-'0')
		}
		j++
	}
	if j == start || exp > maxExponent {
		return 0
	}
	return j
}
