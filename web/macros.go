package web

// patternMacros maps macro names to regexp fragments. Macros are usable in
// variable definitions as {name:macro} and expand to the listed pattern;
// any other value after the colon is treated as a raw regexp.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	// RFC 1035/1123: labels 1-63 chars.
	"domain": `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
}

// expandMacro returns the regexp fragment for a macro name, or the input
// unchanged when it is not a known macro.
func expandMacro(pattern string) string {
	if p, ok := patternMacros[pattern]; ok {
		return p
	}
	return pattern
}
