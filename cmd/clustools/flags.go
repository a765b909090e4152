package main

import (
	"fmt"
	"strings"

	"github.com/TrevorS/clustools"
)

// policyAliases maps the numeric policy codes of older score pipelines.
var policyAliases = map[string]clustools.Policy{
	"0": clustools.PolicyHierarchicalCutoff,
	"1": clustools.PolicySpicker,
	"2": clustools.PolicyKMedoid,
	"3": clustools.PolicyStrict,
	"4": clustools.PolicyUPGMA,
}

var measureAliases = map[string]clustools.Measure{
	"0": clustools.MeasureDistance,
	"1": clustools.MeasureSimilarity,
}

// parsePolicy accepts a policy name or its numeric alias. Dashes and case
// are ignored in names.
func parsePolicy(s string) (clustools.Policy, error) {
	s = strings.TrimSpace(s)
	if p, ok := policyAliases[s]; ok {
		return p, nil
	}
	p := clustools.Policy(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	switch p {
	case clustools.PolicyHierarchical, clustools.PolicyHierarchicalCutoff, clustools.PolicyStrict,
		clustools.PolicyUPGMA, clustools.PolicySpicker, clustools.PolicyKMedoid:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown policy %q", clustools.ErrInvalidConfiguration, s)
}

// parseMeasure accepts a measure name or its numeric alias.
func parseMeasure(s string) (clustools.Measure, error) {
	s = strings.TrimSpace(s)
	if m, ok := measureAliases[s]; ok {
		return m, nil
	}
	m := clustools.Measure(strings.ToLower(s))
	switch m {
	case clustools.MeasureDistance, clustools.MeasureSimilarity:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown measure %q", clustools.ErrInvalidConfiguration, s)
}
