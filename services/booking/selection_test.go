package booking

import (
	"testing"

	"streambook/models"

	"github.com/stretchr/testify/assert"
)

func TestToggle_SelectSingleHour(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	assert.Equal(t, []string{"10:00"}, r.Toggle(monday, "10:00", nil))
}

func TestToggle_DeselectIsPlainRemoval(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	got := r.Toggle(monday, "10:00", []string{"09:00", "10:00", "11:00"})

	// Removal leaves the flanks untouched even though they are no longer
	// contiguous.
	assert.Equal(t, []string{"09:00", "11:00"}, got)
}

func TestToggle_SelectFillsSpan(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	got := r.Toggle(monday, "12:00", []string{"09:00"})

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, got)
}

func TestToggle_SpanSkipsUnavailableHours(t *testing.T) {
	// 12:00 sits outside every slot, so a span across it keeps the gap.
	r := loadedResolver(mondaySchedule(
		models.TimeSlot{Start: "09:00", End: "12:00"},
		models.TimeSlot{Start: "13:00", End: "17:00"},
	), nil)

	got := r.Toggle(monday, "13:00", []string{"11:00"})

	assert.Equal(t, []string{"11:00", "13:00"}, got)
}

func TestToggle_SpanSkipsBookedHours(t *testing.T) {
	r := loadedResolver(
		mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}),
		[]models.Booking{{
			Date:      monday,
			StartTime: "11:00",
			EndTime:   "12:00",
			Status:    models.BookingStatusAccepted,
		}},
	)

	got := r.Toggle(monday, "14:00", []string{"10:00"})

	// 11:00 is booked and 12:00 is its blocked end hour.
	assert.Equal(t, []string{"10:00", "13:00", "14:00"}, got)
}

func TestToggle_BuildSelectionAcrossGap(t *testing.T) {
	// 11:00 falls between the two slots.
	r := loadedResolver(mondaySchedule(
		models.TimeSlot{Start: "09:00", End: "11:00"},
		models.TimeSlot{Start: "12:00", End: "17:00"},
	), nil)

	first := r.Toggle(monday, "10:00", nil)
	assert.Equal(t, []string{"10:00"}, first)

	second := r.Toggle(monday, "12:00", first)
	assert.Equal(t, []string{"10:00", "12:00"}, second)
}

func TestToggle_SelectingUnavailableHourDropsIt(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "12:00"}), nil)

	assert.Empty(t, r.Toggle(monday, "20:00", nil))
}

func TestToggle_MalformedHourLeavesSelection(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	assert.Equal(t, []string{"09:00", "10:00"}, r.Toggle(monday, "banana", []string{"09:00", "10:00"}))
}

func TestToggle_RoundTripIsIdempotent(t *testing.T) {
	r := loadedResolver(mondaySchedule(models.TimeSlot{Start: "09:00", End: "17:00"}), nil)

	current := []string{"09:00", "10:00", "11:00"}
	after := r.Toggle(monday, "12:00", current)
	back := r.Toggle(monday, "12:00", after)

	assert.Equal(t, current, back)
}
