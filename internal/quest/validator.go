package quest

import (
	"regexp"
	"strings"
)

// IsCorrect decides whether a submitted code satisfies a task rule.
//
// An empty rule always accepts (the task is reviewed out-of-band). Otherwise
// the rule is matched in precedence order: case-insensitive equality, then
// `/…/` as a case-insensitive regular expression matched anywhere in the
// text, then `|`-separated trimmed alternatives. The regex form wins over
// the pipe form, so `/a|b/` is a regex, not two alternatives.
//
// Photo tasks never reach this function.
func IsCorrect(rule, submitted string) bool {
	if rule == "" {
		return true
	}

	if strings.EqualFold(rule, submitted) {
		return true
	}

	if len(rule) >= 2 && strings.HasPrefix(rule, "/") && strings.HasSuffix(rule, "/") {
		re, err := regexp.Compile("(?i)" + rule[1:len(rule)-1])
		if err != nil {
			// A broken pattern fails closed rather than crashing submission
			// handling.
			return false
		}
		return re.MatchString(submitted)
	}

	if strings.Contains(rule, "|") {
		folded := strings.ToLower(submitted)
		for _, alt := range strings.Split(strings.ToLower(rule), "|") {
			if strings.TrimSpace(alt) == folded {
				return true
			}
		}
	}

	return false
}
