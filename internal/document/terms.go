package document

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
)

// germanHolidays maps German state abbreviations to their holiday slices.
var germanHolidays = map[string][]*cal.Holiday{
	"BW": de.HolidaysBW,
	"BY": de.HolidaysBY,
	"BE": de.HolidaysBE,
	"BB": de.HolidaysBB,
	"HB": de.HolidaysHB,
	"HH": de.HolidaysHH,
	"HE": de.HolidaysHE,
	"MV": de.HolidaysMV,
	"NI": de.HolidaysNI,
	"NW": de.HolidaysNW,
	"RP": de.HolidaysRP,
	"SL": de.HolidaysSL,
	"SN": de.HolidaysSN,
	"ST": de.HolidaysST,
	"SH": de.HolidaysSH,
	"TH": de.HolidaysTH,
}

// newBusinessCalendar creates a calendar with the public holidays of the
// issuer. France is the default.
func newBusinessCalendar(c Company) *cal.BusinessCalendar {
	bc := cal.NewBusinessCalendar()
	bc.Name = c.Name

	switch strings.ToUpper(c.CountryCode) {
	case "DE":
		holidays, ok := germanHolidays[strings.ToUpper(c.Province)]
		if !ok {
			holidays = de.HolidaysBW
		}
		bc.AddHoliday(holidays...)
	default:
		bc.AddHoliday(fr.Holidays...)
	}
	return bc
}

// DueDate adds days calendar days to issued and rolls the result forward to
// the next business day of the issuer.
func DueDate(issued time.Time, days int, issuer Company) time.Time {
	bc := newBusinessCalendar(issuer)

	due := issued.AddDate(0, 0, days)
	for i := 0; i < 14 && !bc.IsWorkday(due); i++ {
		due = due.AddDate(0, 0, 1)
	}
	return due
}
