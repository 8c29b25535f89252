// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"regexp"
	"strings"
)

// emphasisPattern matches the shortest **...** pair. A pair never crosses a
// line terminator, carriage returns included.
var emphasisPattern = regexp.MustCompile(`\*\*([^\r\n\x{2028}\x{2029}]*?)\*\*`)

// Span is a run of text with a single presentation.
type Span struct {
	Text     string
	Emphasis bool
}

// Line is one visual line of a rendered entry.
type Line []Span

// Plain returns the line text without any emphasis.
func (l Line) Plain() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Parse splits text into lines and each line into spans. A CRLF ending
// counts as one line break.
// Unmatched delimiters are kept literally.
func Parse(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, parseLine(strings.TrimSuffix(r, "\r")))
	}
	return lines
}

func parseLine(s string) Line {
	var line Line
	last := 0
	for _, m := range emphasisPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			line = append(line, Span{Text: s[last:m[0]]})
		}
		line = append(line, Span{Text: s[m[2]:m[3]], Emphasis: true})
		last = m[1]
	}
	if last < len(s) {
		line = append(line, Span{Text: s[last:]})
	}
	return line
}

// Strip removes emphasis delimiters and returns plain text with the original
// line breaks. Used for clipboard copies and plain exports.
func Strip(text string) string {
	lines := Parse(text)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Plain()
	}
	return strings.Join(out, "\n")
}

// Render applies fn to every emphasized span and joins the result, with lines
// separated by "\n". fn receives the span text without delimiters.
func Render(text string, emphasis func(string) string) string {
	lines := Parse(text)
	out := make([]string, len(lines))
	for i, l := range lines {
		var sb strings.Builder
		for _, s := range l {
			if s.Emphasis {
				sb.WriteString(emphasis(s.Text))
			} else {
				sb.WriteString(s.Text)
			}
		}
		out[i] = sb.String()
	}
	return strings.Join(out, "\n")
}
