package dfm

import (
	"fmt"
	"strings"
)

// Refine filters a rule table down to the requested features and processes
// and renders the result as a markdown table. Nil filters select
// everything; an empty result is an error so the agent gets told which
// names exist instead of a silent empty table.
func Refine(rules []Rule, features, processes []string) (string, error) {
	featureSet := toSet(features)
	processSet := toSet(processes)

	var matched []Rule
	for _, r := range rules {
		if featureSet != nil && !featureSet[r.Feature] {
			continue
		}
		if processSet != nil && r.Process != "" && !processSet[r.Process] {
			continue
		}
		matched = append(matched, r)
	}

	if len(matched) == 0 {
		return "", fmt.Errorf("dfm: no rules match (features: %s; processes: %s)",
			strings.Join(Features(rules), ", "), strings.Join(Processes(rules), ", "))
	}

	hasProcess := false
	for _, r := range matched {
		if r.Process != "" {
			hasProcess = true
			break
		}
	}

	var b strings.Builder
	if hasProcess {
		b.WriteString("| Feature | Process | Guideline |\n")
		b.WriteString("|---|---|---|\n")
		for _, r := range matched {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Feature, r.Process, r.Guideline)
		}
	} else {
		b.WriteString("| Feature | Guideline |\n")
		b.WriteString("|---|---|\n")
		for _, r := range matched {
			fmt.Fprintf(&b, "| %s | %s |\n", r.Feature, r.Guideline)
		}
	}
	return b.String(), nil
}

// toSet returns nil for an empty list so callers can distinguish "no
// filter" from "filter that matches nothing".
func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
