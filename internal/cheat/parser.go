package cheat

import (
	"regexp"
	"strings"
)

var (
	tagPattern         = regexp.MustCompile(`#([\w/-]+)`)
	placeholderPattern = regexp.MustCompile(`<([^<>]+)>`)
)

// Parse scans markdown text and returns the cheats it contains, in document
// order. Parsing never fails: sections without a code block yield nothing and
// malformed input is skipped.
//
// Format: `# Heading` resets the category context (tag tokens on the heading
// line or on following tag lines become the inherited tags), `## Heading`
// starts a cheat, fenced code blocks form its body, and `#cat/name` lines
// inside a cheat's span add tags for that cheat only.
func Parse(text, vault, file string) []Cheat {
	var (
		cheats    []Cheat
		inherited []string // category context tags
		local     []string // tags scoped to the current ## section
		title     string
		titleLine int
		body      []string
		inCode    bool
	)

	flush := func() {
		cmd := strings.TrimSpace(strings.Join(body, "\n"))
		if title != "" && cmd != "" {
			c := Cheat{
				ID:     cheatID(vault, file, titleLine, title),
				Title:  title,
				Body:   cmd,
				Tags:   mergeTags(inherited, local),
				Params: ExtractParams(cmd),
				Vault:  vault,
				File:   file,
				Line:   titleLine,
			}
			cheats = append(cheats, c)
		}
		title = ""
		body = nil
		local = nil
	}

	for i, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "```") || strings.HasPrefix(stripped, "~~~") {
			inCode = !inCode
			continue
		}
		if inCode {
			body = append(body, line)
			continue
		}

		switch {
		case strings.HasPrefix(stripped, "## "):
			flush()
			title = strings.TrimSpace(stripped[3:])
			titleLine = i + 1
		case strings.HasPrefix(stripped, "# "):
			flush()
			inherited = nil
			// Tag tokens may ride on the heading line itself.
			inherited = appendTags(inherited, strings.TrimSpace(stripped[2:]))
		case strings.HasPrefix(stripped, "#") && strings.Contains(stripped, "/"):
			if title == "" {
				inherited = appendTags(inherited, stripped)
			} else {
				local = appendTags(local, stripped)
			}
		}
	}
	flush()

	return cheats
}

// appendTags extracts #tag tokens containing a slash and appends them,
// lowercased, preserving first-seen order.
func appendTags(tags []string, line string) []string {
	for _, m := range tagPattern.FindAllStringSubmatch(line, -1) {
		tag := strings.ToLower(m[1])
		if !strings.Contains(tag, "/") {
			continue
		}
		tags = appendUnique(tags, tag)
	}
	return tags
}

// mergeTags combines inherited category tags with the cheat's local tags.
// Local tags extend, never replace, the inherited set.
func mergeTags(inherited, local []string) []string {
	out := make([]string, 0, len(inherited)+len(local))
	for _, t := range inherited {
		out = appendUnique(out, t)
	}
	for _, t := range local {
		out = appendUnique(out, t)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// ExtractParams returns the distinct placeholder names in body, in first-seen
// order. Extraction is purely lexical: a <name> inside a shell comment still
// counts. A trailing |default is not part of the name.
func ExtractParams(body string) []string {
	var params []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		name, ok := paramName(m[1])
		if !ok {
			continue
		}
		params = appendUnique(params, name)
	}
	return params
}

// paramName validates the inner text of a <...> token and strips any
// |default suffix. Tokens with whitespace are not placeholders.
func paramName(inner string) (string, bool) {
	name, _, _ := strings.Cut(inner, "|")
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return "", false
	}
	return name, true
}
