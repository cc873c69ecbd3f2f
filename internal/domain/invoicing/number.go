package invoicing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// NumberPrefix prefijo fijo del número de factura.
const NumberPrefix = "FACT"

const dayLayout = "20060102"

var numberRe = regexp.MustCompile(`^FACT-(\d{8})-(\d{3,})$`)

// FormatNumber genera FACT-{YYYYMMDD}-{NNN} a partir de la fecha de emisión y del
// consecutivo diario (>= 1). Con más de 999 facturas en un día el sufijo crece a 4+ dígitos.
// Función pura: el consecutivo lo asigna el SequenceSource de forma atómica.
func FormatNumber(issueDate time.Time, seq int64) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("consecutivo de factura inválido: %d", seq)
	}
	return fmt.Sprintf("%s-%s-%03d", NumberPrefix, issueDate.Format(dayLayout), seq), nil
}

// ParseNumber recupera el día y el consecutivo de un número de factura.
func ParseNumber(number string) (day time.Time, seq int64, err error) {
	m := numberRe.FindStringSubmatch(number)
	if m == nil {
		return time.Time{}, 0, fmt.Errorf("número de factura %q con formato inválido", number)
	}
	day, err = time.Parse(dayLayout, m[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("número de factura %q: fecha: %w", number, err)
	}
	seq, err = strconv.ParseInt(m[2], 10, 64)
	if err != nil || seq <= 0 {
		return time.Time{}, 0, fmt.Errorf("número de factura %q: consecutivo inválido", number)
	}
	return day, seq, nil
}

// DayKey clave del contador diario (YYYYMMDD en la zona horaria de t).
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}
