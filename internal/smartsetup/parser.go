// Package smartsetup turns a free-text description of a family's week ("Friday we're eating out,
// Tuesday is soccer so something quick") into a cooking schedule and lunch needs.
package smartsetup

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	QuickMinutes   = 30
	RelaxedMinutes = 90
)

// DayPlan is the parsed plan for one weekday.
type DayPlan struct {
	Day            int    `json:"day"`
	Name           string `json:"name"`
	IsCooking      bool   `json:"is_cooking"`
	MaxCookMinutes int    `json:"max_cook_minutes"`
	Notes          string `json:"notes"`
}

// LunchNeed is a parsed request for packed lunches.
type LunchNeed struct {
	Day        int    `json:"day"`
	MemberName string `json:"member_name"`
	Count      int    `json:"count"`
	Notes      string `json:"notes"`
}

// Member is what the parser needs to know about a family member.
type Member struct {
	Name  string
	Child bool
}

// Options seed a draft with the family's defaults.
type Options struct {
	WeeknightMinutes int
	WeekendMinutes   int
	Members          []Member
}

// Draft accumulates the effect of every message applied to it. Later statements about a day override
// earlier ones.
type Draft struct {
	Days         []DayPlan   `json:"days"`
	LunchNeeds   []LunchNeed `json:"lunch_needs"`
	Unrecognized []string    `json:"unrecognized"`

	members []Member
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NewDraft returns a week where every day is a cooking day with the default time limits.
func NewDraft(opts Options) *Draft {
	weeknight := opts.WeeknightMinutes
	if weeknight <= 0 {
		weeknight = 45
	}
	weekend := opts.WeekendMinutes
	if weekend <= 0 {
		weekend = weeknight * 2
	}
	d := &Draft{members: opts.Members, LunchNeeds: []LunchNeed{}, Unrecognized: []string{}}
	for i := 0; i < 7; i++ {
		limit := weeknight
		if i >= 5 {
			limit = weekend
		}
		d.Days = append(d.Days, DayPlan{Day: i, Name: dayNames[i], IsCooking: true, MaxCookMinutes: limit})
	}
	return d
}

// Parse applies a single message to a fresh draft.
func Parse(text string, opts Options) *Draft {
	d := NewDraft(opts)
	d.Apply(text)
	return d
}

var noCookPhrases = []struct {
	phrase string
	note   string
}{
	{"eating out", "Eating out"},
	{"eat out", "Eating out"},
	{"dining out", "Eating out"},
	{"going out", "Eating out"},
	{"restaurant", "Eating out"},
	{"takeout", "Takeout"},
	{"take-out", "Takeout"},
	{"take out", "Takeout"},
	{"takeaway", "Takeout"},
	{"order in", "Takeout"},
	{"ordering in", "Takeout"},
	{"delivery", "Takeout"},
	{"leftover", "Leftovers"},
	{"no cooking", "No cooking"},
	{"not cooking", "No cooking"},
	{"won't cook", "No cooking"},
	{"wont cook", "No cooking"},
	{"don't cook", "No cooking"},
	{"dont cook", "No cooking"},
	{"no dinner", "No cooking"},
	{"skip", "No cooking"},
	{"away", "Away"},
	{"out of town", "Away"},
}

var cookPhrases = []string{"cook", "cooking", "make dinner", "making dinner", "at home", "home", "dinner", "meal"}

var (
	numberWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7, "eight": 8,
		"nine": 9, "ten": 10, "fifteen": 15, "twenty": 20, "thirty": 30, "forty": 40,
		"forty-five": 45, "fifty": 50, "sixty": 60, "ninety": 90,
	}
	numberPattern = `(\d+(?:\.\d+)?|forty-five|one|two|three|four|five|six|seven|eight|nine|ten|fifteen|twenty|thirty|forty|fifty|sixty|ninety)`

	minutesRe  = regexp.MustCompile(numberPattern + `\s*(?:-\s*)?(?:minutes?|mins?)\b`)
	hoursRe    = regexp.MustCompile(numberPattern + `\s*(?:-\s*)?(?:hours?|hrs?)\b`)
	halfHourRe = regexp.MustCompile(`\bhalf(?: an)? hour\b`)
	anHourRe   = regexp.MustCompile(`\b(?:an|one) hour\b`)
	countRe    = regexp.MustCompile(numberPattern + `\s+(?:packed\s+)?lunch(?:es)?\b`)
)

var quickWords = []string{"quick", "busy", "fast", "rushed", "hectic", "in a hurry", "short on time", "easy"}

var relaxedWords = []string{"slow", "plenty of time", "more time", "lots of time", "relaxed", "leisurely", "elaborate"}

func parseNumber(s string) (float64, bool) {
	if n, ok := numberWords[s]; ok {
		return float64(n), true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// timeLimit extracts a cooking time limit in minutes, or 0 when the clause names none.
func timeLimit(clause string) int {
	if m := minutesRe.FindStringSubmatch(clause); m != nil {
		if v, ok := parseNumber(m[1]); ok {
			return int(v)
		}
	}
	if halfHourRe.MatchString(clause) {
		return 30
	}
	if m := hoursRe.FindStringSubmatch(clause); m != nil {
		if v, ok := parseNumber(m[1]); ok {
			return int(v * 60)
		}
	}
	if anHourRe.MatchString(clause) {
		return 60
	}
	for _, w := range quickWords {
		if containsWord(clause, w) {
			return QuickMinutes
		}
	}
	for _, w := range relaxedWords {
		if containsWord(clause, w) {
			return RelaxedMinutes
		}
	}
	return 0
}

func noCookNote(clause string) (string, bool) {
	for _, p := range noCookPhrases {
		if strings.Contains(clause, p.phrase) {
			return p.note, true
		}
	}
	return "", false
}

func mentionsCooking(clause string) bool {
	for _, p := range cookPhrases {
		if containsWord(clause, p) {
			return true
		}
	}
	return false
}

// containsWord matches phrase on word boundaries.
func containsWord(s, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if (start == 0 || !isLetter(s[start-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Apply folds one message into the draft.
func (d *Draft) Apply(text string) {
	for _, sentence := range clauses(text) {
		var carried []int
		var pending []string
		for _, frag := range sentence {
			days := findDays(frag)
			if len(days) == 0 {
				days = carried
			} else if len(pending) > 0 {
				days = mergeDays(carried, days)
			}
			if d.applyClause(frag, days) {
				carried = days
				pending = nil
				continue
			}
			if len(findDays(frag)) > 0 {
				// a bare day list ("monday, tuesday and wednesday ...") joins the next fragment
				carried = mergeDays(carried, days)
				pending = append(pending, frag)
				continue
			}
			d.Unrecognized = append(d.Unrecognized, frag)
		}
		d.Unrecognized = append(d.Unrecognized, pending...)
	}
}

func (d *Draft) applyClause(clause string, days []int) bool {
	if containsWord(clause, "lunch") || containsWord(clause, "lunches") {
		return d.applyLunch(clause, days)
	}

	if note, ok := noCookNote(clause); ok {
		if len(days) == 0 {
			return false
		}
		for _, day := range days {
			d.Days[day].IsCooking = false
			d.Days[day].Notes = note
		}
		return true
	}

	limit := timeLimit(clause)
	if limit > 0 {
		if len(days) == 0 {
			days = []int{0, 1, 2, 3, 4, 5, 6}
		}
		for _, day := range days {
			d.Days[day].IsCooking = true
			d.Days[day].MaxCookMinutes = limit
			d.Days[day].Notes = ""
		}
		return true
	}

	if mentionsCooking(clause) && len(days) > 0 {
		for _, day := range days {
			d.Days[day].IsCooking = true
			d.Days[day].Notes = ""
		}
		return true
	}
	return false
}

func (d *Draft) applyLunch(clause string, days []int) bool {
	if len(days) == 0 {
		days = []int{0, 1, 2, 3, 4}
	}
	negated := strings.Contains(clause, "no lunch") || strings.Contains(clause, "don't need") ||
		strings.Contains(clause, "dont need") || strings.Contains(clause, "not need")

	audience, count := d.lunchAudience(clause)
	if m := countRe.FindStringSubmatch(clause); m != nil && len(audience) == 1 {
		if v, ok := parseNumber(m[1]); ok && v >= 1 {
			count = int(v)
		}
	}

	for _, day := range days {
		for _, who := range audience {
			d.removeLunch(day, who)
			if !negated {
				d.LunchNeeds = append(d.LunchNeeds, LunchNeed{Day: day, MemberName: who, Count: count})
			}
		}
	}
	return true
}

// lunchAudience resolves who the lunch is for: named members, "kids", "adults" or the whole family
// (empty name).
func (d *Draft) lunchAudience(clause string) ([]string, int) {
	var names []string
	for _, m := range d.members {
		if m.Name != "" && containsWord(clause, strings.ToLower(m.Name)) {
			names = append(names, m.Name)
		}
	}
	if len(names) > 0 {
		return names, 1
	}

	children, adults := 0, 0
	for _, m := range d.members {
		if m.Child {
			children++
		} else {
			adults++
		}
	}
	for _, w := range []string{"kids", "children", "the boys", "the girls"} {
		if strings.Contains(clause, w) {
			return []string{"kids"}, max(children, 1)
		}
	}
	for _, w := range []string{"adults", "grown-ups", "grownups", "parents", "us two"} {
		if strings.Contains(clause, w) {
			return []string{"adults"}, max(adults, 1)
		}
	}
	return []string{""}, max(len(d.members), 1)
}

func (d *Draft) removeLunch(day int, who string) {
	kept := d.LunchNeeds[:0]
	for _, n := range d.LunchNeeds {
		if n.Day == day && strings.EqualFold(n.MemberName, who) {
			continue
		}
		kept = append(kept, n)
	}
	d.LunchNeeds = kept
}

func mergeDays(a, b []int) []int {
	set := map[int]bool{}
	for _, d := range a {
		set[d] = true
	}
	for _, d := range b {
		set[d] = true
	}
	var out []int
	for i := 0; i < 7; i++ {
		if set[i] {
			out = append(out, i)
		}
	}
	return out
}
