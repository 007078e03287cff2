package timer

import (
	"strconv"
	"time"
)

// Format renders a remaining time as MM:SS, or H:MM:SS once minutes reach an hour.
func Format(minutes, seconds int) string {
	if minutes >= 60 {
		hours := minutes / 60
		minutes -= hours * 60
		return strconv.Itoa(hours) + ":" + twoDigits(minutes) + ":" + twoDigits(seconds)
	}
	return twoDigits(minutes) + ":" + twoDigits(seconds)
}

func twoDigits(n int) string {
	s := "0" + strconv.Itoa(n)
	return s[len(s)-2:]
}

// splitRemaining breaks a positive remaining duration into whole minutes and
// sub-minute seconds, truncating fractional seconds.
func splitRemaining(d time.Duration) (minutes, seconds int) {
	total := int(d / time.Second)
	minutes = total / 60
	return minutes, total - minutes*60
}
