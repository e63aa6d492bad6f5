package web

import (
	"fmt"
	"regexp"
	"strings"
)

// Address is a compiled route pattern. It pairs the original pattern string
// with an anchored regular expression and the ordered list of variable names
// that appear in the pattern. An Address is immutable after compilation.
type Address struct {
	// raw is the original pattern string.
	raw string
	// matcher is the compiled anchored regexp, nil for the catch-all pattern.
	matcher *regexp.Regexp
	// varNames are the variable names in left-to-right pattern order.
	varNames []string
	// matchAll indicates the "*" pattern, which matches every path.
	matchAll bool
}

// CompileAddress parses a route pattern and returns a compiled Address.
//
// The pattern "*" matches any path and declares no variables. Any other
// pattern is split on "/" (empty segments are discarded); a segment of the
// form {name} or {name:subpattern} declares a variable, every other segment
// is matched verbatim. The default subpattern is ".*". The subpattern may
// also name a pattern macro, see macros.go.
//
// Malformed patterns (unbalanced braces, empty variable names, invalid
// subpatterns) are reported here, at registration time.
func CompileAddress(pattern string) (*Address, error) {
	if pattern == "*" {
		return &Address{raw: pattern, matchAll: true}, nil
	}

	if _, err := braceIndices(pattern); err != nil {
		return nil, err
	}

	var (
		exprs    []string
		varNames []string
	)

	for _, seg := range strings.Split(pattern, "/") {
		if seg == "" {
			continue
		}

		name, patt, ok, err := parseVarSegment(seg)
		if err != nil {
			return nil, err
		}
		if !ok {
			exprs = append(exprs, regexp.QuoteMeta(seg))
			continue
		}

		varNames = append(varNames, name)
		exprs = append(exprs, fmt.Sprintf("(%s)", patt))
	}

	if err := checkDuplicateVars(varNames); err != nil {
		return nil, err
	}

	matcher, err := compileRegexp("^/" + strings.Join(exprs, "/") + "$")
	if err != nil {
		return nil, fmt.Errorf("web: invalid pattern %q: %w", pattern, err)
	}

	return &Address{
		raw:      pattern,
		matcher:  matcher,
		varNames: varNames,
	}, nil
}

// MustCompileAddress is like CompileAddress but panics on error.
// Intended for static route tables built at startup.
func MustCompileAddress(pattern string) *Address {
	addr, err := CompileAddress(pattern)
	if err != nil {
		panic(err)
	}
	return addr
}

// Raw returns the original pattern string.
func (a *Address) Raw() string {
	return a.raw
}

// VarNames returns the variable names in pattern order.
func (a *Address) VarNames() []string {
	out := make([]string, len(a.varNames))
	copy(out, a.varNames)
	return out
}

// MatchPath reports whether the given normalized path satisfies the address.
func (a *Address) MatchPath(path string) bool {
	if a.matchAll {
		return true
	}
	return a.matcher.MatchString(path)
}

// Vars extracts the variable values captured from the given path. The
// returned map has one entry per declared variable. Returns nil when the
// path does not match.
func (a *Address) Vars(path string) map[string]string {
	if a.matchAll {
		return map[string]string{}
	}

	matches := a.matcher.FindStringSubmatch(path)
	if matches == nil {
		return nil
	}

	vars := make(map[string]string, len(a.varNames))
	for i, name := range a.varNames {
		vars[name] = matches[i+1]
	}
	return vars
}

// parseVarSegment reports whether seg is a variable segment. For a segment
// of the form {name} or {name:subpattern} it returns the variable name and
// its regexp pattern (macros expanded, ".*" when absent).
func parseVarSegment(seg string) (name, patt string, ok bool, err error) {
	if len(seg) < 2 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", "", false, nil
	}

	// The braces must form a single group spanning the whole segment,
	// otherwise the segment is a literal (e.g. "{a}x" or "{a}{b}").
	idxs, err := braceIndices(seg)
	if err != nil {
		return "", "", false, err
	}
	if len(idxs) != 2 || idxs[0] != 0 || idxs[1] != len(seg) {
		return "", "", false, nil
	}

	name, patt, found := strings.Cut(seg[1:len(seg)-1], ":")
	if name == "" {
		return "", "", false, fmt.Errorf("web: missing variable name in %q", seg)
	}
	if !found || patt == "" {
		return name, ".*", true, nil
	}
	return name, expandMacro(patt), true, nil
}

// braceIndices returns the start and end+1 indices of each top-level {...}
// pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("web: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("web: unbalanced braces in %q", s)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("web: duplicated route variable %q", v)
		}
		seen[v] = true
	}
	return nil
}
