package schedule

import (
	"fmt"
	"strings"
)

// Day identifies one of the seven canonical days of the week, Monday-first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Days lists the canonical days in presentation order.
var Days = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [7]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// dayAliases maps accepted spellings to days. The legacy back-office client
// sends Spanish day keys (lunes..domingo), so both languages are accepted.
var dayAliases = map[string]Day{
	"MONDAY":    Monday,
	"TUESDAY":   Tuesday,
	"WEDNESDAY": Wednesday,
	"THURSDAY":  Thursday,
	"FRIDAY":    Friday,
	"SATURDAY":  Saturday,
	"SUNDAY":    Sunday,
	"LUNES":     Monday,
	"MARTES":    Tuesday,
	"MIERCOLES": Wednesday,
	"MIÉRCOLES": Wednesday,
	"JUEVES":    Thursday,
	"VIERNES":   Friday,
	"SABADO":    Saturday,
	"SÁBADO":    Saturday,
	"DOMINGO":   Sunday,
}

// ParseDay resolves an English or Spanish day name, case-insensitively.
func ParseDay(raw string) (Day, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if d, ok := dayAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown day %q", raw)
}

// Valid reports whether the value is one of the seven canonical days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the canonical uppercase English name.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DAY(%d)", int(d))
	}
	return dayNames[d]
}
