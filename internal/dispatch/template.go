package dispatch

import (
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\$\{\{\s*(.*?)\s*\}\}`)

// Vars maps placeholder expressions (runner.temp, env.VERSION_TAG, ...) to values.
type Vars map[string]string

// Keys lists the recognized expressions in sorted order.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Eval resolves an expression of the form a || b || 'literal'. The first
// non-empty alternative wins. Names under env. that were never written
// resolve to empty. Any other unknown name makes the expression unresolved.
func (v Vars) Eval(expr string) (string, bool) {
	var last string
	for _, alt := range strings.Split(expr, "||") {
		alt = strings.TrimSpace(alt)
		val, ok := v.lookup(alt)
		if !ok {
			return "", false
		}
		if val != "" {
			return val, true
		}
		last = val
	}
	return last, true
}

func (v Vars) lookup(term string) (string, bool) {
	if lit, ok := quoted(term); ok {
		return lit, true
	}
	if val, ok := v[term]; ok {
		return val, true
	}
	if strings.HasPrefix(term, "env.") {
		return "", true
	}
	return "", false
}

func quoted(term string) (string, bool) {
	if len(term) < 2 || term[0] != '\'' || term[len(term)-1] != '\'' {
		return "", false
	}
	return strings.ReplaceAll(term[1:len(term)-1], "''", "'"), true
}

// Render replaces every ${{ expr }} in text in a single pass. Unresolved
// placeholders are kept verbatim and substituted text is not rescanned.
func Render(text string, vars Vars) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		expr := placeholderRe.FindStringSubmatch(m)[1]
		if val, ok := vars.Eval(expr); ok {
			return val
		}
		return m
	})
}
