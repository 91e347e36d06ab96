package emit

import (
	"errors"
	"fmt"
	"strings"
)

// SectionMarker brackets hand-written code that survives regeneration
const SectionMarker = "// EXISTING_CODE"

// ErrMissingSection is returned when new content has more marker pairs
// than the file being replaced
var ErrMissingSection = errors.New("missing " + SectionMarker + " section")

// ExtractSections returns the marker-bracketed sections of content in
// order, each including its two marker lines. An unterminated trailing
// section is dropped.
func ExtractSections(content string) []string {
	var sections []string
	var cur strings.Builder
	open := false
	for _, line := range splitLines(content) {
		if strings.Contains(line, SectionMarker) {
			cur.WriteString(line + "\n")
			if open {
				sections = append(sections, cur.String())
				cur.Reset()
			}
			open = !open
			continue
		}
		if open {
			cur.WriteString(line + "\n")
		}
	}
	return sections
}

// ApplySections replaces each marker pair of content, in order, with the
// corresponding preserved section
func ApplySections(content string, sections []string) (string, error) {
	if !strings.Contains(content, SectionMarker) {
		return content, nil
	}

	var sb strings.Builder
	open := false
	idx := 0
	for n, line := range splitLines(content) {
		if strings.Contains(line, SectionMarker) {
			if open {
				open = false
				idx++
				continue
			}
			if idx >= len(sections) {
				return "", fmt.Errorf("%w %d at line %d", ErrMissingSection, idx, n+1)
			}
			sb.WriteString(sections[idx])
			open = true
			continue
		}
		if !open {
			sb.WriteString(line + "\n")
		}
	}

	ret := sb.String()
	if !strings.HasSuffix(content, "\n") {
		ret = strings.TrimSuffix(ret, "\n")
	}
	return ret, nil
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}
