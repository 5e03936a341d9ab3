package models

import "time"

// TimeSlot is a half-open hour interval [Start, End) with hour-granularity
// "HH:00" bounds, e.g. {"09:00", "17:00"}.
type TimeSlot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DaySchedule holds the slots a streamer published for one weekday.
// Slots are not required to be sorted or contiguous, and overlap is not
// guarded against; any matching slot makes an hour available.
type DaySchedule struct {
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// WeeklySchedule is a streamer's recurring availability template, keyed by
// weekday index as a string ("0"=Sunday .. "6"=Saturday).
type WeeklySchedule struct {
	StreamerID string                 `bson:"streamerId" json:"streamerId"`
	Days       map[string]DaySchedule `bson:"days" json:"days"`
	UpdatedAt  time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// DayFor returns the schedule for the given weekday, if one was published.
func (ws *WeeklySchedule) DayFor(weekday time.Weekday) (DaySchedule, bool) {
	if ws == nil || ws.Days == nil {
		return DaySchedule{}, false
	}
	day, ok := ws.Days[weekdayKey(weekday)]
	return day, ok
}

func weekdayKey(weekday time.Weekday) string {
	return string(rune('0' + int(weekday)))
}
