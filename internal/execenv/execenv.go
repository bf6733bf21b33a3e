// Package execenv derives the environment handed to supervised commands.
// Variables can be inherited wholesale, restricted to a core set, or dropped
// entirely, with glob-pattern excludes and explicit overrides on top.
package execenv

import (
	"os"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Inherit controls which variables form the starting set.
type Inherit string

const (
	// InheritAll passes the full parent environment (default).
	InheritAll Inherit = "all"
	// InheritCore keeps only core platform variables (HOME, PATH, SHELL, ...).
	InheritCore Inherit = "core"
	// InheritNone starts from an empty environment.
	InheritNone Inherit = "none"
)

// coreVars are the platform-essential variables kept by InheritCore.
var coreVars = map[string]bool{
	"HOME":    true,
	"LOGNAME": true,
	"PATH":    true,
	"SHELL":   true,
	"TERM":    true,
	"TMPDIR":  true,
	"USER":    true,
}

// secretPatterns are excluded unless the policy opts out; they commonly hold
// credentials that a spawned command has no business seeing.
var secretPatterns = []string{"*KEY*", "*SECRET*", "*TOKEN*"}

// Policy configures environment derivation for one supervised command.
type Policy struct {
	// Inherit selects the starting set; empty means InheritAll.
	Inherit Inherit
	// Exclude removes variables whose names match any glob pattern
	// (case-insensitive, * and ? wildcards).
	Exclude []string
	// Set inserts explicit KEY=VALUE overrides after filtering.
	Set map[string]string
	// KeepSecrets disables the default *KEY*/*SECRET*/*TOKEN* excludes.
	KeepSecrets bool
}

// Environ returns the filtered environment as KEY=VALUE pairs, sorted by key,
// suitable for exec.Cmd.Env. A nil receiver or zero Policy inherits everything
// except secret-looking variables.
func (p *Policy) Environ() []string {
	var policy Policy
	if p != nil {
		policy = *p
	}
	return policy.derive(os.Environ())
}

func (p Policy) derive(parent []string) []string {
	inherit := p.Inherit
	if inherit == "" {
		inherit = InheritAll
	}

	env := make(map[string]string)
	if inherit != InheritNone {
		for _, entry := range parent {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if inherit == InheritCore && !coreVars[k] {
				continue
			}
			env[k] = v
		}
	}

	exclude := p.Exclude
	if !p.KeepSecrets {
		exclude = append(secretPatterns[:len(secretPatterns):len(secretPatterns)], exclude...)
	}
	if matchers := compilePatterns(exclude); len(matchers) > 0 {
		for k := range env {
			name := strings.ToLower(k)
			for _, m := range matchers {
				if m.Match(name) {
					delete(env, k)
					break
				}
			}
		}
	}

	for k, v := range p.Set {
		env[k] = v
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// compilePatterns lowers and compiles glob patterns, skipping malformed ones.
// A bad exclude pattern must not abort command execution.
func compilePatterns(patterns []string) []glob.Glob {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			continue
		}
		matchers = append(matchers, g)
	}
	return matchers
}
