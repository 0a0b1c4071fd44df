package core

import "regexp"

var variablePattern = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

// Lookuper resolves variable names for Expand.
type Lookuper interface {
	Get(name string) (string, bool)
}

// Expand replaces every $NAME token with the variable's value, or with the
// empty string when the variable is unset. Substituted values are not
// expanded again.
func Expand(text string, env Lookuper) string {
	return variablePattern.ReplaceAllStringFunc(text, func(token string) string {
		value, _ := env.Get(token[1:])
		return value
	})
}
