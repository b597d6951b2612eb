package smartsetup

import (
	"regexp"
	"strings"
)

var dayTokens = map[string]int{
	"monday": 0, "mon": 0, "mondays": 0,
	"tuesday": 1, "tue": 1, "tues": 1, "tuesdays": 1,
	"wednesday": 2, "wed": 2, "weds": 2, "wednesdays": 2,
	"thursday": 3, "thu": 3, "thur": 3, "thurs": 3, "thursdays": 3,
	"friday": 4, "fri": 4, "fridays": 4,
	"saturday": 5, "sat": 5, "saturdays": 5,
	"sunday": 6, "sun": 6, "sundays": 6,
}

var (
	dayWord = `(mondays?|mon|tuesdays?|tues?|wednesdays?|weds?|thursdays?|thu(?:rs?)?|fridays?|fri|saturdays?|sat|sundays?|sun)`
	rangeRe = regexp.MustCompile(`\b` + dayWord + `\s*(?:-|–|through|thru|to|until|till)\s*` + dayWord + `\b`)
	dayRe   = regexp.MustCompile(`\b` + dayWord + `\b`)

	groupPhrases = []struct {
		re   *regexp.Regexp
		days []int
	}{
		{regexp.MustCompile(`\b(every ?day|each day|all week|daily|every night|each night|whole week)\b`), []int{0, 1, 2, 3, 4, 5, 6}},
		{regexp.MustCompile(`\b(week ?days|week ?nights|school ?nights|work ?nights)\b`), []int{0, 1, 2, 3, 4}},
		{regexp.MustCompile(`\b(week ?ends?)\b`), []int{5, 6}},
	}
)

// findDays returns the weekdays a clause refers to, in week order.
func findDays(clause string) []int {
	set := map[int]bool{}
	rest := clause
	for _, m := range rangeRe.FindAllStringSubmatch(rest, -1) {
		from, to := dayTokens[m[1]], dayTokens[m[2]]
		for d := from; ; d = (d + 1) % 7 {
			set[d] = true
			if d == to {
				break
			}
		}
	}
	rest = rangeRe.ReplaceAllString(rest, " ")
	for _, g := range groupPhrases {
		if g.re.MatchString(rest) {
			for _, d := range g.days {
				set[d] = true
			}
			rest = g.re.ReplaceAllString(rest, " ")
		}
	}
	for _, m := range dayRe.FindAllStringSubmatch(rest, -1) {
		set[dayTokens[m[1]]] = true
	}

	var days []int
	for d := 0; d < 7; d++ {
		if set[d] {
			days = append(days, d)
		}
	}
	return days
}

var sentenceSplit = regexp.MustCompile(`[;!?\n]+|\.(?:\s+|$)|\s+but\s+|\s+then\s+|\s+also\s+`)

// clauses splits a message into sentences and each sentence into comma or "and" separated
// fragments.
func clauses(text string) [][]string {
	var out [][]string
	for _, sentence := range sentenceSplit.Split(strings.ToLower(text), -1) {
		var frags []string
		for _, f := range strings.Split(sentence, ",") {
			if f = strings.TrimSpace(f); f != "" {
				frags = append(frags, f)
			}
		}
		if len(frags) > 0 {
			out = append(out, frags)
		}
	}
	return out
}
