package domain

// Weekday is the closed set of day names a weekly plan is keyed by.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists all days in calendar order. Every weekly plan carries
// exactly one schedule per entry in this slice.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday validates a day name coming from the API boundary.
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

func (d Weekday) IsValid() bool {
	_, ok := ParseWeekday(string(d))
	return ok
}
