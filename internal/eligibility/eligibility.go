package eligibility

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akhilm/jobsift/internal/model"
)

// Ruleset is a named set of marker phrases the filter matches against.
// Rulesets are plain values passed in at construction so tests and config
// can substitute their own; there are no package-level mutable lists.
type Ruleset struct {
	Version       string
	SeniorMarkers []string // any match rejects the experience check
	EntryMarkers  []string // any match accepts the experience check
	VisaNegative  []string // any match rejects the visa check
	VisaPositive  []string // any match accepts the visa check
}

// DefaultRuleset returns the built-in marker lists.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Version: "v1",
		SeniorMarkers: []string{
			"senior", "sr.", "lead", "principal", "architect", "manager",
			"staff engineer", "expert",
		},
		EntryMarkers: []string{
			"entry level", "new grad", "new graduate", "junior", "associate",
			"0-2 years", "0 to 2 years", "1-2 years", "1 to 2 years",
			"recent graduate", "college graduate", "university graduate",
		},
		VisaNegative: []string{
			"no sponsorship", "no visa sponsorship", "citizenship required",
			"us citizen required", "green card required",
			"permanent resident required", "no h1b", "no h1-b",
		},
		VisaPositive: []string{
			"visa sponsorship", "will sponsor", "h1b", "h1-b",
			"sponsorship available", "work authorization", "green card",
			"permanent resident", "citizenship not required",
			"international candidates", "visa support", "immigration support",
		},
	}
}

// Policy controls what happens when a sub-check finds no marker at all.
// Accepting by default favors recall over precision: ambiguous postings
// stay in the dataset. Each sub-check is tunable independently.
type Policy struct {
	ExperienceFallbackAccept bool
	VisaFallbackAccept       bool
}

// DefaultPolicy accepts ambiguous postings on both sub-checks.
func DefaultPolicy() Policy {
	return Policy{ExperienceFallbackAccept: true, VisaFallbackAccept: true}
}

// Years-of-experience requirements at or above this count as senior.
const seniorYears = 5

var yearsExpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?experience`),
	regexp.MustCompile(`experience\s*(?:of\s*)?(\d+)\+?\s*(?:years?|yrs?)`),
}

// Filter applies the experience and visa-sponsorship eligibility checks.
type Filter struct {
	rules  Ruleset
	policy Policy
}

// New returns a filter over the given ruleset and fallback policy.
func New(rules Ruleset, policy Policy) *Filter {
	return &Filter{rules: rules, policy: policy}
}

// Eligible reports whether a posting passes both sub-checks, evaluated
// over the lower-cased title + snippet.
func (f *Filter) Eligible(p model.JobPosting) bool {
	text := strings.ToLower(p.Title + " " + p.Snippet)
	return f.ExperienceOK(text) && f.VisaOK(text)
}

// ExperienceOK runs the experience sub-check on already lower-cased text.
// Senior markers are checked before entry markers: a posting mentioning
// both is rejected.
func (f *Filter) ExperienceOK(text string) bool {
	for _, marker := range f.rules.SeniorMarkers {
		if strings.Contains(text, marker) {
			return false
		}
	}
	for _, re := range yearsExpPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			// The match is all digits, so Atoi only fails on overflow;
			// a count too large to parse is far past the threshold.
			years, err := strconv.Atoi(m[1])
			if err != nil || years >= seniorYears {
				return false
			}
		}
	}
	for _, marker := range f.rules.EntryMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return f.policy.ExperienceFallbackAccept
}

// VisaOK runs the visa sub-check on already lower-cased text. Negative
// markers win over positive ones: "green card holders excluded" must not
// read as sponsorship just because "green card" appears.
func (f *Filter) VisaOK(text string) bool {
	for _, marker := range f.rules.VisaNegative {
		if strings.Contains(text, marker) {
			return false
		}
	}
	for _, marker := range f.rules.VisaPositive {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return f.policy.VisaFallbackAccept
}
