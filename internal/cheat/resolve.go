package cheat

// Resolution is the outcome of substituting a cheat's placeholders.
type Resolution struct {
	// Command is the body with every resolvable <name> replaced verbatim.
	// No shell escaping is performed; the executor gets it as-is.
	Command string
	// Unresolved lists params with no value in either layer, first-seen
	// order. Their placeholders remain literally in Command.
	Unresolved []string
	// NewParams lists params absent from the globals map entirely. The
	// caller decides whether to seed them; Resolve never mutates globals.
	NewParams []string
}

// Resolve substitutes c's placeholders from overrides (per-invocation values,
// highest precedence) and globals. Empty-string values count as unset.
func Resolve(c Cheat, globals, overrides map[string]string) Resolution {
	res := Resolution{}

	lookup := func(name string) (string, bool) {
		if v, ok := overrides[name]; ok && v != "" {
			return v, true
		}
		if v, ok := globals[name]; ok && v != "" {
			return v, true
		}
		return "", false
	}

	res.Command = placeholderPattern.ReplaceAllStringFunc(c.Body, func(token string) string {
		name, ok := paramName(token[1 : len(token)-1])
		if !ok {
			return token
		}
		if v, ok := lookup(name); ok {
			return v
		}
		return token
	})

	for _, p := range c.Params {
		if _, ok := lookup(p); !ok {
			res.Unresolved = append(res.Unresolved, p)
		}
		if _, known := globals[p]; !known {
			res.NewParams = append(res.NewParams, p)
		}
	}
	return res
}
