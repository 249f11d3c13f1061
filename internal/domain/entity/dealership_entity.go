package entity

import "time"

// DayOfWeek enumerates schedule days, MONDAY first.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var dayOrder = map[DayOfWeek]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// Order returns the ascending sort index of the day (Monday = 0).
// Unknown days sort last.
func (d DayOfWeek) Order() int {
	if i, ok := dayOrder[d]; ok {
		return i
	}
	return len(dayOrder)
}

// Valid reports whether d is a known day.
func (d DayOfWeek) Valid() bool {
	_, ok := dayOrder[d]
	return ok
}

// WorkingHour is one day's schedule entry. Open/close times are "HH:MM".
type WorkingHour struct {
	ID           string
	DealershipID string
	DayOfWeek    DayOfWeek
	OpenTime     string
	CloseTime    string
	IsOpen       bool
}

// DealershipInfo is the singleton dealership configuration record.
// At most one row exists; it is created lazily with defaults on first read.
type DealershipInfo struct {
	ID           string
	Name         string
	Address      string
	Phone        string
	Email        string
	WorkingHours []WorkingHour
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultWorkingHours is the weekly schedule used when the singleton is
// created lazily: Mon-Fri 09:00-18:00 open, Sat 10:00-16:00 open,
// Sun 10:00-16:00 closed.
func DefaultWorkingHours() []WorkingHour {
	return []WorkingHour{
		{DayOfWeek: Monday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: Tuesday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: Wednesday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: Thursday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: Friday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		{DayOfWeek: Saturday, OpenTime: "10:00", CloseTime: "16:00", IsOpen: true},
		{DayOfWeek: Sunday, OpenTime: "10:00", CloseTime: "16:00", IsOpen: false},
	}
}
