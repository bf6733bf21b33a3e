// Package execpolicy classifies shell commands as allow, prompt, or forbid
// using prefix rules loaded from a Starlark policy file. The command gate
// consults the policy before deciding whether to ask the user.
package execpolicy

import (
	"fmt"
	"strings"
)

// Decision is the outcome of evaluating a command against the policy.
// Decisions are ordered: Allow < Prompt < Forbid. When several rules match,
// the highest decision wins.
type Decision int

const (
	// DecisionAllow runs the command without asking.
	DecisionAllow Decision = iota
	// DecisionPrompt asks the user before running (also the no-match default).
	DecisionPrompt
	// DecisionForbid refuses to run the command at all.
	DecisionForbid
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionPrompt:
		return "prompt"
	case DecisionForbid:
		return "forbid"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// ParseDecision parses "allow", "prompt", or "forbid" (case-insensitive).
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "allow":
		return DecisionAllow, nil
	case "prompt":
		return DecisionPrompt, nil
	case "forbid":
		return DecisionForbid, nil
	default:
		return DecisionAllow, fmt.Errorf("invalid decision %q: must be allow, prompt, or forbid", s)
	}
}

// Rule is a prefix rule: it matches when the command's leading tokens match
// the pattern. A pattern token may list alternatives separated by "|".
type Rule struct {
	Pattern       []string
	Decision      Decision
	Justification string
}

// Match reports whether cmd's leading tokens match the rule's pattern.
func (r Rule) Match(cmd []string) bool {
	if len(cmd) < len(r.Pattern) {
		return false
	}
	for i, pat := range r.Pattern {
		if !tokenMatch(pat, cmd[i]) {
			return false
		}
	}
	return true
}

func tokenMatch(pattern, token string) bool {
	for _, alt := range strings.Split(pattern, "|") {
		if alt == token {
			return true
		}
	}
	return false
}

// Evaluation is the aggregate result of checking a command.
type Evaluation struct {
	Decision      Decision
	Justification string
	// Matched is false when no rule applied and the default was used.
	Matched bool
}

// Policy is a set of prefix rules indexed by first pattern token for lookup.
// Rules whose first token lists alternatives are indexed under every alternative.
type Policy struct {
	rulesByProgram map[string][]Rule
}

// NewPolicy creates an empty policy.
func NewPolicy() *Policy {
	return &Policy{rulesByProgram: make(map[string][]Rule)}
}

// AddRule adds a rule to the policy.
func (p *Policy) AddRule(r Rule) {
	if len(r.Pattern) == 0 {
		return
	}
	for _, program := range strings.Split(r.Pattern[0], "|") {
		p.rulesByProgram[program] = append(p.rulesByProgram[program], r)
	}
}

// Check evaluates a tokenized command. With no matching rule the decision is
// DecisionPrompt, so an empty policy changes nothing about gate behavior.
func (p *Policy) Check(cmd []string) Evaluation {
	if p == nil || len(cmd) == 0 {
		return Evaluation{Decision: DecisionPrompt}
	}

	eval := Evaluation{Decision: DecisionAllow}
	matched := false
	for _, r := range p.rulesByProgram[cmd[0]] {
		if !r.Match(cmd) {
			continue
		}
		matched = true
		if r.Decision >= eval.Decision {
			eval.Decision = r.Decision
			eval.Justification = r.Justification
		}
	}

	if !matched {
		return Evaluation{Decision: DecisionPrompt}
	}
	eval.Matched = true
	return eval
}

// shellMeta marks constructs this tokenizer cannot see through. A rule must
// never auto-allow "ls && rm -rf /" because it starts with ls.
var shellMeta = []string{"&&", "||", ";", "|", "$(", "`", ">", "<", "\n"}

// CheckCommand tokenizes a raw command line on whitespace and evaluates it.
// Shell-grammar parsing is out of scope: any command using shell operators
// or substitution falls back to prompting regardless of rules.
func (p *Policy) CheckCommand(command string) Evaluation {
	for _, meta := range shellMeta {
		if strings.Contains(command, meta) {
			return Evaluation{Decision: DecisionPrompt}
		}
	}
	return p.Check(strings.Fields(command))
}
