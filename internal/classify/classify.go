package classify

import (
	"strings"

	"github.com/akhilm/jobsift/internal/model"
)

// Rule maps a set of keywords to a role category.
type Rule struct {
	Role     model.Role
	Keywords []string
}

// DefaultRules returns the built-in rule list. Order is load-bearing:
// rules are tried first to last and the first match wins, so a posting
// mentioning both "devops" and "cloud" classifies as DevOps.
func DefaultRules() []Rule {
	return []Rule{
		{Role: model.RoleDevOps, Keywords: []string{
			"devops", "dev ops", "site reliability", "sre", "infrastructure", "deployment",
		}},
		{Role: model.RoleCloud, Keywords: []string{
			"cloud", "aws", "azure", "gcp", "google cloud",
		}},
		{Role: model.RoleAIML, Keywords: []string{
			"ai", "ml", "machine learning", "artificial intelligence",
			"data scientist", "data science",
		}},
		{Role: model.RoleSWE, Keywords: []string{
			"software engineer", "swe", "software developer", "sde",
		}},
	}
}

// Classifier assigns a role category from title/description text.
type Classifier struct {
	rules    []Rule
	fallback model.Role
}

// New returns a classifier over the given ordered rules. Postings matching
// no rule get the fallback role.
func New(rules []Rule, fallback model.Role) *Classifier {
	return &Classifier{rules: rules, fallback: fallback}
}

// NewDefault returns a classifier with the built-in rules and SDE fallback.
func NewDefault() *Classifier {
	return New(DefaultRules(), model.RoleSDE)
}

// Classify returns the role for the given title and description. The text
// is lower-cased and rules are applied in order; first match wins.
func (c *Classifier) Classify(title, description string) model.Role {
	text := strings.ToLower(title + " " + description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Role
			}
		}
	}
	return c.fallback
}
