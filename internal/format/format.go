// Package format holds the fixed pt-BR display tables: BRL currency
// punctuation, month names, and weekday headers. The tables are hardcoded on
// purpose; host-locale lookup is not portable and is never consulted.
package format

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = [13]string{
	"",
	"Janeiro", "Fevereiro", "Março", "Abril",
	"Maio", "Junho", "Julho", "Agosto",
	"Setembro", "Outubro", "Novembro", "Dezembro",
}

var weekdays = []string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}

// Real renders centavos as BRL: thousands dot, decimal comma, "R$ " prefix.
// Real(123450) == "R$ 1.234,50".
func Real(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := cents / 100
	frac := cents % 100
	return fmt.Sprintf("%sR$ %s,%02d", sign, groupThousands(reais), frac)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// NomeMes returns the Portuguese month name, or "" out of range.
func NomeMes(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// DiasSemana returns the Monday-first short weekday headers.
func DiasSemana() []string {
	out := make([]string, len(weekdays))
	copy(out, weekdays)
	return out
}

// DataBR renders a date as dd/mm/yyyy for the drilldown header.
func DataBR(t time.Time) string {
	return t.Format("02/01/2006")
}
