package planner

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayNames indexes weekdays the way plan items do, Monday first.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Season returns the northern-hemisphere season of t.
func Season(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

func seasonMatches(tags []string, season string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == season || tag == "all" || tag == "year-round" {
			return true
		}
		if season == "autumn" && tag == "fall" {
			return true
		}
	}
	return false
}

// Seed derives the jitter seed for a family's week.
func Seed(familyID uuid.UUID, weekStart time.Time) uint64 {
	h := fnv.New64a()
	h.Write(familyID[:])
	h.Write([]byte(weekStart.Format("2006-01-02")))
	return h.Sum64()
}

// jitter is a stable pseudo-random value in [0, 0.5) for one candidate on one slot.
func jitter(seed uint64, slot string, id uuid.UUID) float64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	h.Write([]byte(slot))
	h.Write(id[:])
	return float64(h.Sum64()>>11) / float64(1<<53) * 0.5
}
