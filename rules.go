package main

import (
	"fmt"
	"regexp"
)

// Query holds the six optional match criteria of a rule. Pointer fields keep
// "absent" (no constraint) distinguishable from "present but empty" (a config
// mistake that must never match).
type Query struct {
	Repo  *string `yaml:"repo"`
	Topic *string `yaml:"topic"`
	User  *string `yaml:"user"`
	Title *string `yaml:"title"`
	Body  *string `yaml:"body"`
	Label *string `yaml:"label"`
}

// Rule routes matching events to one Slack channel under a display name.
type Rule struct {
	Channel      string `yaml:"channel"`
	DisplayName  string `yaml:"display_name"`
	Query        Query  `yaml:"query"`
	ExcludeQuery *Query `yaml:"exclude_query"`
}

// RuleMatch is the per-channel routing decision for one event. DisplayName
// carries every matching rule's display name joined by "&" in rule order.
type RuleMatch struct {
	Channel     string
	DisplayName string
}

// pattern is one compiled query criterion. re is nil for an empty pattern
// string, which always evaluates to non-match.
type pattern struct {
	field string
	re    *regexp.Regexp
}

func compilePattern(field string, raw *string) (*pattern, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return &pattern{field: field}, nil
	}
	// Substring search, case-insensitive, matching the original matching
	// semantics. Compiled once here so bad config stops startup instead of
	// surfacing per request.
	re, err := regexp.Compile("(?i)" + *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern %q: %w", field, *raw, err)
	}
	return &pattern{field: field, re: re}, nil
}

func (p *pattern) matches(s string) bool {
	if p.re == nil {
		logger.Warn("query field %q has an empty pattern, treating as non-match", p.field)
		return false
	}
	return p.re.MatchString(s)
}

func (p *pattern) matchesAny(values []string) bool {
	if p.re == nil {
		logger.Warn("query field %q has an empty pattern, treating as non-match", p.field)
		return false
	}
	for _, v := range values {
		if p.re.MatchString(v) {
			return true
		}
	}
	return false
}

// compiledQuery keeps only the criteria actually present in the config.
type compiledQuery struct {
	repo  *pattern
	topic *pattern
	user  *pattern
	title *pattern
	body  *pattern
	label *pattern
}

func compileQuery(q *Query) (*compiledQuery, error) {
	if q == nil {
		return nil, nil
	}
	cq := &compiledQuery{}
	var err error
	if cq.repo, err = compilePattern("repo", q.Repo); err != nil {
		return nil, err
	}
	if cq.topic, err = compilePattern("topic", q.Topic); err != nil {
		return nil, err
	}
	if cq.user, err = compilePattern("user", q.User); err != nil {
		return nil, err
	}
	if cq.title, err = compilePattern("title", q.Title); err != nil {
		return nil, err
	}
	if cq.body, err = compilePattern("body", q.Body); err != nil {
		return nil, err
	}
	if cq.label, err = compilePattern("label", q.Label); err != nil {
		return nil, err
	}
	return cq, nil
}

// evaluate runs every present criterion against the event and returns the
// per-criterion outcomes. An absent criterion contributes nothing.
func (cq *compiledQuery) evaluate(ev Event) []bool {
	var results []bool
	if cq.repo != nil {
		results = append(results, cq.repo.matches(ev.Repo().FullName))
	}
	if cq.topic != nil {
		results = append(results, cq.topic.matchesAny(ev.Repo().Topics))
	}
	if cq.user != nil {
		results = append(results, cq.user.matches(ev.Sender().Login))
	}
	if cq.title != nil {
		results = append(results, cq.title.matches(ev.Title()))
	}
	if cq.body != nil {
		results = append(results, cq.body.matches(ev.Body()))
	}
	if cq.label != nil {
		results = append(results, cq.label.matchesAny(ev.LabelNames()))
	}
	return results
}

// CompiledRule is a Rule with its patterns compiled for per-event evaluation.
type CompiledRule struct {
	Channel     string
	DisplayName string
	query       *compiledQuery
	exclude     *compiledQuery
}

// CompileRules validates and compiles the configured rule list. Any invalid
// regex is a configuration error and fails the whole load.
func CompileRules(rules []Rule) ([]*CompiledRule, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	for i := range rules {
		r := &rules[i]
		query, err := compileQuery(&r.Query)
		if err != nil {
			return nil, fmt.Errorf("rule %d (channel %q): query: %w", i, r.Channel, err)
		}
		exclude, err := compileQuery(r.ExcludeQuery)
		if err != nil {
			return nil, fmt.Errorf("rule %d (channel %q): exclude_query: %w", i, r.Channel, err)
		}
		compiled = append(compiled, &CompiledRule{
			Channel:     r.Channel,
			DisplayName: r.DisplayName,
			query:       query,
			exclude:     exclude,
		})
	}
	return compiled, nil
}

// matches reports whether the event passes this rule: every present inclusion
// criterion must hold (a rule with no criteria matches everything), and no
// present exclusion criterion may hold.
func (r *CompiledRule) matches(ev Event) bool {
	for _, ok := range r.query.evaluate(ev) {
		if !ok {
			return false
		}
	}
	if r.exclude != nil {
		for _, ok := range r.exclude.evaluate(ev) {
			if ok {
				return false
			}
		}
	}
	return true
}

// matchRules evaluates every rule against the event and aggregates the
// routing decisions per channel. When several rules target the same channel
// their display names are joined with "&" in rule-list order.
func matchRules(ev Event, rules []*CompiledRule) map[string]RuleMatch {
	matches := make(map[string]RuleMatch)
	for _, r := range rules {
		if !r.matches(ev) {
			continue
		}

		displayName := r.DisplayName
		if prev, ok := matches[r.Channel]; ok {
			displayName = prev.DisplayName + "&" + displayName
		}
		matches[r.Channel] = RuleMatch{Channel: r.Channel, DisplayName: displayName}
	}
	return matches
}
