package models

// BarberSchedule is a day override of a barber's working window.
// Day is either a calendar date ("2006-01-02") or a weekday index ("0".."6").
type BarberSchedule struct {
	Base

	BarberID string `gorm:"size:64;uniqueIndex:idx_schedule_barber_day" json:"barberId"`
	Day      string `gorm:"size:10;uniqueIndex:idx_schedule_barber_day" json:"day"`

	StartTime  string `gorm:"size:5" json:"startTime"`
	EndTime    string `gorm:"size:5" json:"endTime"`
	BreakStart string `gorm:"size:5" json:"breakStart,omitempty"`
	BreakEnd   string `gorm:"size:5" json:"breakEnd,omitempty"`
}

func (BarberSchedule) TableName() string {
	return "barber_schedules"
}

func (s BarberSchedule) HasBreak() bool {
	return s.BreakStart != "" && s.BreakEnd != ""
}
