package execpolicy

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
)

// Parse evaluates a Starlark policy source and returns the resulting Policy.
// The policy file calls the prefix_rule builtin:
//
//	prefix_rule(pattern=["git", "status|log|diff"], decision="allow")
//	prefix_rule(pattern=["shutdown"], decision="forbid", justification="no host control")
func Parse(filename, source string) (*Policy, error) {
	policy := NewPolicy()

	prefixRule := starlark.NewBuiltin("prefix_rule", func(
		thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var (
			patternVal    *starlark.List
			decisionStr   string
			justification string
		)
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"pattern", &patternVal,
			"decision?", &decisionStr,
			"justification?", &justification,
		); err != nil {
			return nil, err
		}

		if decisionStr == "" {
			decisionStr = "allow"
		}
		decision, err := ParseDecision(decisionStr)
		if err != nil {
			return nil, err
		}

		pattern, err := patternStrings(patternVal)
		if err != nil {
			return nil, err
		}
		if len(pattern) == 0 {
			return nil, fmt.Errorf("prefix_rule pattern must not be empty")
		}

		policy.AddRule(Rule{
			Pattern:       pattern,
			Decision:      decision,
			Justification: justification,
		})
		return starlark.None, nil
	})

	thread := &starlark.Thread{Name: filename}
	predeclared := starlark.StringDict{"prefix_rule": prefixRule}

	if _, err := starlark.ExecFile(thread, filename, source, predeclared); err != nil {
		return nil, fmt.Errorf("parsing policy %s: %w", filename, err)
	}
	return policy, nil
}

// Load reads and parses a policy file from disk.
func Load(path string) (*Policy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy: %w", err)
	}
	return Parse(path, string(source))
}

func patternStrings(list *starlark.List) ([]string, error) {
	if list == nil {
		return nil, fmt.Errorf("prefix_rule pattern must be a list of strings")
	}
	pattern := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("prefix_rule pattern element %d is not a string", i)
		}
		pattern = append(pattern, s)
	}
	return pattern, nil
}
