package booking

import (
	"time"

	"streambook/models"
)

// Availability is the three-valued result of a slot lookup. Unknown means
// the snapshot is incomplete (a fetch has not finished yet) and collapses to
// unavailable at the boolean boundary, so missing data always fails closed.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityAvailable
	AvailabilityUnavailable
)

// Snapshot is the read-only data the resolver evaluates against: the weekly
// template and the active bookings, each replaced wholesale on every fetch.
// The loaded flags record whether the corresponding fetch has completed at
// least once.
type Snapshot struct {
	Schedule       *models.WeeklySchedule
	Bookings       []models.Booking
	ScheduleLoaded bool
	BookingsLoaded bool
}

// Resolver answers hour-availability questions against one snapshot. It is a
// pure function of its inputs and never mutates them.
type Resolver struct {
	snap Snapshot
}

// NewResolver creates a resolver over the given snapshot.
func NewResolver(snap Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// Lookup resolves availability of one hour on one calendar date.
func (r *Resolver) Lookup(date, hour string) Availability {
	if !r.snap.ScheduleLoaded || !r.snap.BookingsLoaded {
		return AvailabilityUnknown
	}
	h, ok := parseHour(hour)
	if !ok {
		return AvailabilityUnavailable
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return AvailabilityUnavailable
	}

	if !r.availableByTemplate(day.Weekday(), h) {
		return AvailabilityUnavailable
	}
	if r.blockedByBooking(date, h) {
		return AvailabilityUnavailable
	}
	return AvailabilityAvailable
}

// IsAvailable collapses Unknown to false.
func (r *Resolver) IsAvailable(date, hour string) bool {
	return r.Lookup(date, hour) == AvailabilityAvailable
}

// availableByTemplate reports whether any published slot of the weekday
// covers the hour. Slots are matched permissively: unordered, possibly
// overlapping, unparsable ones skipped.
func (r *Resolver) availableByTemplate(weekday time.Weekday, h int) bool {
	day, ok := r.snap.Schedule.DayFor(weekday)
	if !ok {
		return false
	}
	for _, slot := range day.Slots {
		start, okS := parseHour(slot.Start)
		end, okE := parseHour(slot.End)
		if !okS || !okE {
			continue
		}
		if start <= h && h < end {
			return true
		}
	}
	return false
}

// blockedByBooking reports whether an active booking on the same date covers
// the hour. The end hour itself also blocks, but only for bookings whose end
// is strictly after their start, so zero- or negative-length records cannot
// spuriously block their own end hour.
func (r *Resolver) blockedByBooking(date string, h int) bool {
	for _, b := range r.snap.Bookings {
		if !b.IsActive() || b.Date != date {
			continue
		}
		start, okS := parseHour(b.StartTime)
		end, okE := parseHour(b.EndTime)
		if !okS || !okE {
			continue
		}
		if start <= h && h < end {
			return true
		}
		if h == end && end > start {
			return true
		}
	}
	return false
}

// OptionsFor returns every whole hour in [from, to) on the date, formatted
// "HH:00" in ascending order, filtered through the resolver. The sequence is
// recomputed on demand and never cached.
func (r *Resolver) OptionsFor(date, from, to string) []string {
	start, okS := parseHour(from)
	end, okE := parseHour(to)
	if !okS || !okE {
		return nil
	}
	var options []string
	for h := start; h < end; h++ {
		hour := formatHour(h)
		if r.IsAvailable(date, hour) {
			options = append(options, hour)
		}
	}
	return options
}
