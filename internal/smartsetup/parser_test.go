package smartsetup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var family = Options{
	WeeknightMinutes: 40,
	Members: []Member{
		{Name: "Ana"},
		{Name: "Leo"},
		{Name: "Mia", Child: true},
		{Name: "Noah", Child: true},
	},
}

func TestDefaults(t *testing.T) {
	d := NewDraft(family)
	require.Len(t, d.Days, 7)
	assert.True(t, d.Days[0].IsCooking)
	assert.Equal(t, 40, d.Days[2].MaxCookMinutes)
	assert.Equal(t, 80, d.Days[6].MaxCookMinutes)
	assert.Equal(t, "Sunday", d.Days[6].Name)
}

func TestEatingOut(t *testing.T) {
	d := Parse("Friday we're eating out", family)
	assert.False(t, d.Days[4].IsCooking)
	assert.Equal(t, "Eating out", d.Days[4].Notes)
	for i, day := range d.Days {
		if i != 4 {
			assert.True(t, day.IsCooking, day.Name)
		}
	}
	assert.Empty(t, d.Unrecognized)
}

func TestLaterClausesOverride(t *testing.T) {
	d := Parse("Friday we're eating out. Actually Friday we'll cook something quick", family)
	assert.True(t, d.Days[4].IsCooking)
	assert.Equal(t, QuickMinutes, d.Days[4].MaxCookMinutes)

	d.Apply("never mind, friday is takeout")
	assert.False(t, d.Days[4].IsCooking)
	assert.Equal(t, "Takeout", d.Days[4].Notes)
}

func TestTimeLimits(t *testing.T) {
	d := Parse("Tuesday is soccer so 20 minutes max. Saturday we have plenty of time; Sunday 1.5 hours", family)
	assert.Equal(t, 20, d.Days[1].MaxCookMinutes)
	assert.Equal(t, RelaxedMinutes, d.Days[5].MaxCookMinutes)
	assert.Equal(t, 90, d.Days[6].MaxCookMinutes)

	d = Parse("wednesday half an hour", family)
	assert.Equal(t, 30, d.Days[2].MaxCookMinutes)

	d = Parse("weeknights need to be busy-night friendly, thirty minutes", family)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 30, d.Days[i].MaxCookMinutes)
	}
	assert.Equal(t, 80, d.Days[5].MaxCookMinutes)
}

func TestDayRangesAndGroups(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, findDays("monday through thursday"))
	assert.Equal(t, []int{0, 1, 2, 3}, findDays("mon-thu"))
	assert.Equal(t, []int{0, 5, 6}, findDays("saturday to monday"))
	assert.Equal(t, []int{5, 6}, findDays("on the weekend"))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, findDays("weeknights"))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, findDays("every day"))
	assert.Equal(t, []int{1, 3}, findDays("tues and thurs"))
	assert.Empty(t, findDays("sunny afternoon"))
}

func TestBareDayListJoinsNextFragment(t *testing.T) {
	d := Parse("Monday, Tuesday and Wednesday we're having leftovers", family)
	for i := 0; i < 3; i++ {
		assert.False(t, d.Days[i].IsCooking)
		assert.Equal(t, "Leftovers", d.Days[i].Notes)
	}
	assert.True(t, d.Days[3].IsCooking)
	assert.Empty(t, d.Unrecognized)
}

func TestCarriedDays(t *testing.T) {
	d := Parse("Thursday is piano, so something fast", family)
	assert.Equal(t, QuickMinutes, d.Days[3].MaxCookMinutes)
}

func TestLunchNeeds(t *testing.T) {
	d := Parse("The kids need packed lunches on weekdays", family)
	require.Len(t, d.LunchNeeds, 5)
	assert.Equal(t, "kids", d.LunchNeeds[0].MemberName)
	assert.Equal(t, 2, d.LunchNeeds[0].Count)

	d = Parse("Ana needs lunch on monday and wednesday", family)
	require.Len(t, d.LunchNeeds, 2)
	assert.Equal(t, "Ana", d.LunchNeeds[0].MemberName)
	assert.Equal(t, 1, d.LunchNeeds[0].Count)
	assert.Equal(t, 2, d.LunchNeeds[1].Day)

	d.Apply("no lunch for ana on wednesday")
	require.Len(t, d.LunchNeeds, 1)
	assert.Equal(t, 0, d.LunchNeeds[0].Day)

	d = Parse("everyone needs lunch saturday", family)
	require.Len(t, d.LunchNeeds, 1)
	assert.Equal(t, "", d.LunchNeeds[0].MemberName)
	assert.Equal(t, 4, d.LunchNeeds[0].Count)
}

func TestUnrecognized(t *testing.T) {
	d := Parse("We love tacos. Friday eating out", family)
	assert.Equal(t, []string{"we love tacos"}, d.Unrecognized)
	assert.False(t, d.Days[4].IsCooking)
}
