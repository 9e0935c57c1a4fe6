package ai

import "strings"

// ParseGenerated splits model output into title and body using the
// first-line-title convention the generation prompt asks for. The model is
// not forced into this structure, so parsing is best-effort: when the output
// is a single line or starts with an empty line run, the title is empty and
// the full text becomes the body.
func ParseGenerated(content string) (title, body string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ""
	}

	lines := strings.SplitN(content, "\n", 2)
	if len(lines) < 2 {
		return "", content
	}

	title = strings.TrimSpace(strings.TrimLeft(lines[0], "# "))
	body = strings.TrimSpace(lines[1])
	if title == "" || body == "" {
		return "", content
	}
	return title, body
}
