package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// parseHour extracts the hour component from an "HH:00"-style string.
// Minutes are ignored deliberately; scheduling is hour-granular.
func parseHour(s string) (int, bool) {
	head, _, found := strings.Cut(s, ":")
	if !found {
		head = s
	}
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// formatHour renders an hour integer as "HH:00".
func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
