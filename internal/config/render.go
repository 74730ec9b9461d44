package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var lines []string
	lines = append(lines, "# mdserve configuration (TOML)", "")
	top, sections, order := splitSections(GetConfigOptions())
	for _, o := range top {
		appendOption(&lines, o)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			appendOption(&lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML merges missing defaults into an existing TOML document and
// comments out keys the schema no longer knows. The bool reports a change.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	sectionEnd := make(map[string]int) // index in out just past the section's last key
	firstHeader := -1
	section := ""
	changed := false
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			if firstHeader < 0 {
				firstHeader = len(out)
			}
			out = append(out, line)
			sectionEnd[section] = len(out)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		if section != "" {
			key = section + "." + key
		}
		seen[key] = true
		if known[key] {
			out = append(out, line)
		} else {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out,
				indent+"# OUTDATED: option removed from config schema",
				indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
		}
		if section != "" {
			sectionEnd[section] = len(out)
		}
	}

	topAt := firstHeader
	if topAt < 0 {
		topAt = len(out)
	}
	inserts := make(map[int][]string)
	var fresh []ConfigOption
	for _, o := range opts {
		if seen[o.Key] {
			continue
		}
		changed = true
		head, rest, dotted := strings.Cut(o.Key, ".")
		switch end, exists := sectionEnd[head]; {
		case !dotted:
			ins := inserts[topAt]
			appendOption(&ins, o)
			inserts[topAt] = ins
		case exists:
			ins := inserts[end]
			appendOption(&ins, ConfigOption{Key: rest, Default: o.Default, Comment: o.Comment})
			inserts[end] = ins
		default:
			fresh = append(fresh, o)
		}
	}
	if !changed {
		return existing, false
	}

	merged := make([]string, 0, len(out)+len(opts)*3)
	for i, line := range out {
		merged = append(merged, inserts[i]...)
		merged = append(merged, line)
	}
	merged = append(merged, inserts[len(out)]...)
	if len(fresh) > 0 {
		merged = append(merged, "# Added by config update")
		_, sections, order := splitSections(fresh)
		for _, s := range order {
			merged = append(merged, "["+s+"]")
			for _, o := range sections[s] {
				appendOption(&merged, o)
			}
		}
	}
	return strings.Join(merged, "\n"), true
}

// splitSections separates dotted keys into TOML tables, keeping first-seen order.
func splitSections(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var top []ConfigOption
	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range opts {
		head, rest, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, exists := sections[head]; !exists {
			order = append(order, head)
		}
		sections[head] = append(sections[head], ConfigOption{Key: rest, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func appendOption(lines *[]string, o ConfigOption) {
	if o.Comment != "" {
		*lines = append(*lines, "# "+o.Comment)
	}
	*lines = append(*lines, fmt.Sprintf("%s = %s", o.Key, tomlValue(o.Default)), "")
}

func tomlValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case []string:
		q := make([]string, len(x))
		for i, s := range x {
			q[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(q, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}

func parseTOMLKey(line string) (string, bool) {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}
