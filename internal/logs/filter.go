package logs

import "strings"

// ComponentFilter matches lines written by one component logger in either the
// console ("INFO poller: msg") or JSON ("component":"poller") format. An
// empty component matches everything.
func ComponentFilter(component string) func(string) bool {
	component = strings.TrimSpace(component)
	if component == "" {
		return func(string) bool { return true }
	}
	console := " " + component + ": "
	jsonField := `"component":"` + component + `"`
	return func(line string) bool {
		return strings.Contains(line, console) || strings.Contains(line, jsonField)
	}
}
