package booking

import (
	"testing"

	"streambook/models"

	"github.com/stretchr/testify/assert"
)

// 2026-08-31 is a Monday; weekday key "1".
const monday = "2026-08-31"

func mondaySchedule(slots ...models.TimeSlot) *models.WeeklySchedule {
	return &models.WeeklySchedule{
		StreamerID: "streamer-1",
		Days: map[string]models.DaySchedule{
			"1": {Slots: slots},
		},
	}
}

func loadedResolver(schedule *models.WeeklySchedule, bookings []models.Booking) *Resolver {
	return NewResolver(Snapshot{
		Schedule:       schedule,
		Bookings:       bookings,
		ScheduleLoaded: true,
		BookingsLoaded: true,
	})
}

func TestLookup_UnknownUntilLoaded(t *testing.T) {
	r := NewResolver(Snapshot{
		Schedule:       mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		ScheduleLoaded: true,
		// Bookings never fetched.
	})

	assert.Equal(t, AvailabilityUnknown, r.Lookup(monday, "10:00"))
	assert.False(t, r.IsAvailable(monday, "10:00"))
	assert.Empty(t, r.OptionsFor(monday, "00:00", "23:00"))
}

func TestLookup_TemplateWindow(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "12:00"}), nil)

	assert.False(t, r.IsAvailable(monday, "08:00"))
	assert.True(t, r.IsAvailable(monday, "09:00"))
	assert.True(t, r.IsAvailable(monday, "11:00"))
	// End bound is exclusive.
	assert.False(t, r.IsAvailable(monday, "12:00"))
}

func TestLookup_NoTemplateForWeekday(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "12:00"}), nil)

	// 2026-09-01 is a Tuesday, which has no published slots.
	assert.False(t, r.IsAvailable("2026-09-01", "10:00"))
}

func TestLookup_OverlappingSlotsAreUnioned(t *testing.T) {
	r := loadedResolver(mondaySchedule(
		models.TimeSlot{Start: "14:00", End: "16:00"},
		models.TimeSlot{Start: "09:00", End: "12:00"},
		models.TimeSlot{Start: "11:00", End: "15:00"},
	), nil)

	for _, hour := range []string{"09:00", "11:00", "12:00", "13:00", "15:00"} {
		assert.True(t, r.IsAvailable(monday, hour), hour)
	}
	assert.False(t, r.IsAvailable(monday, "16:00"))
}

func TestLookup_ActiveBookingBlocksHours(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		[]models.Booking{{
			StreamerID: "streamer-1",
			Date:       monday,
			StartTime:  "10:00",
			EndTime:    "12:00",
			Status:     models.BookingStatusAccepted,
		}},
	)

	assert.True(t, r.IsAvailable(monday, "09:00"))
	assert.False(t, r.IsAvailable(monday, "10:00"))
	assert.False(t, r.IsAvailable(monday, "11:00"))
	// The end hour itself is blocked as well.
	assert.False(t, r.IsAvailable(monday, "12:00"))
	assert.True(t, r.IsAvailable(monday, "13:00"))
}

func TestLookup_InactiveBookingDoesNotBlock(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusCancelled,
		models.BookingStatusRejected,
		models.BookingStatusCompleted,
	} {
		r := loadedResolver(
			mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
			[]models.Booking{{
				Date:      monday,
				StartTime: "10:00",
				EndTime:   "12:00",
				Status:    status,
			}},
		)
		assert.True(t, r.IsAvailable(monday, "10:00"), status)
	}
}

func TestLookup_BookingOnOtherDateDoesNotBlock(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		[]models.Booking{{
			Date:      "2026-09-07",
			StartTime: "10:00",
			EndTime:   "12:00",
			Status:    models.BookingStatusPending,
		}},
	)

	assert.True(t, r.IsAvailable(monday, "10:00"))
}

func TestLookup_ZeroLengthBookingDoesNotBlockEndHour(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		[]models.Booking{{
			Date:      monday,
			StartTime: "10:00",
			EndTime:   "10:00",
			Status:    models.BookingStatusPending,
		}},
	)

	assert.True(t, r.IsAvailable(monday, "10:00"))
}

func TestLookup_MalformedInput(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	assert.Equal(t, AvailabilityUnavailable, r.Lookup(monday, "25:00"))
	assert.Equal(t, AvailabilityUnavailable, r.Lookup(monday, "nine"))
	assert.Equal(t, AvailabilityUnavailable, r.Lookup("31-08-2026", "10:00"))
}

func TestOptionsFor(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "13:00"}),
		[]models.Booking{{
			Date:      monday,
			StartTime: "10:00",
			EndTime:   "12:00",
			Status:    models.BookingStatusPending,
		}},
	)

	// 10:00 and 11:00 are booked, 12:00 is the blocked end hour.
	assert.Equal(t, []string{"09:00"}, r.OptionsFor(monday, "08:00", "14:00"))
	assert.Nil(t, r.OptionsFor(monday, "bad", "14:00"))
}

func TestOptionsFor_OpenDay(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, r.OptionsFor(monday, "10:00", "13:00"))
}

func TestOptionsFor_ExcludesBookedHour(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		[]models.Booking{{
			Date:      monday,
			StartTime: "11:00",
			EndTime:   "12:00",
			Status:    models.BookingStatusAccepted,
		}},
	)

	got := r.OptionsFor(monday, "10:00", "13:00")
	assert.NotContains(t, got, "11:00")
	assert.Contains(t, got, "10:00")
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:00", 9, true},
		{"23:00", 23, true},
		{"24:00", 0, false},
		{"-1:00", 0, false},
		{"0900", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseHour(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if c.ok {
			assert.Equal(t, c.want, got, c.in)
		}
	}
	assert.Equal(t, "07:00", formatHour(7))
	assert.Equal(t, "13:00", formatHour(13))
}
