package booking

import "sort"

// Toggle flips one hour in the current selection and returns the new one.
//
// Deselecting is a plain removal. Selecting inserts the hour, then re-derives
// the inclusive span between the minimum and maximum selected hours and
// filters that whole span back through the resolver. An unavailable hour
// inside the span is silently dropped, so selecting two non-adjacent
// available hours across an unavailable one yields a selection with a gap
// rather than an error. That behavior is load-bearing for the client UI;
// see DESIGN.md before changing it.
//
// The result is always a subset of the span, ascending, without duplicates.
func (r *Resolver) Toggle(date, hour string, current []string) []string {
	h, ok := parseHour(hour)
	if !ok {
		return append([]string(nil), current...)
	}

	selected := make(map[int]bool, len(current)+1)
	for _, s := range current {
		if v, ok := parseHour(s); ok {
			selected[v] = true
		}
	}

	if selected[h] {
		delete(selected, h)
		return hoursOf(selected)
	}

	selected[h] = true
	min, max := h, h
	for v := range selected {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	result := make([]string, 0, max-min+1)
	for v := min; v <= max; v++ {
		hs := formatHour(v)
		if r.IsAvailable(date, hs) {
			result = append(result, hs)
		}
	}
	return result
}

func hoursOf(selected map[int]bool) []string {
	hours := make([]int, 0, len(selected))
	for v := range selected {
		hours = append(hours, v)
	}
	sort.Ints(hours)

	out := make([]string, len(hours))
	for i, v := range hours {
		out[i] = formatHour(v)
	}
	return out
}
