// Package textclean normalizes generated question text before it is shown
// or spoken.
package textclean

import (
	"regexp"
	"strings"
)

// Anchor is a token class that may directly precede a math command.
type Anchor string

const (
	AnchorDollar Anchor = `\$`
	AnchorDigit  Anchor = `\d`
)

// MathCommand is a LaTeX command the content provider tends to emit without
// its leading backslash.
type MathCommand struct {
	Name    string
	Anchors []Anchor
}

// DefaultMathCommands is the repair table applied by Sanitize.
var DefaultMathCommands = []MathCommand{
	{Name: "cdot", Anchors: []Anchor{AnchorDollar, AnchorDigit}},
	{Name: "times", Anchors: []Anchor{AnchorDollar, AnchorDigit}},
	{Name: "frac", Anchors: []Anchor{AnchorDollar}},
	{Name: "sqrt", Anchors: []Anchor{AnchorDollar}},
}

// DefaultLabels are scaffolding labels stripped from the start of a text.
var DefaultLabels = []string{
	"context", "question", "statement", "answer",
	"ngữ cảnh", "câu hỏi", "mệnh đề", "đáp án",
}

// Cleaner applies a fixed rule set. The zero value is not usable; build one
// with New.
type Cleaner struct {
	mathRules []mathRule
	leading   *regexp.Regexp
	markers   *regexp.Regexp
	trailing  *regexp.Regexp
}

type mathRule struct {
	pattern *regexp.Regexp
	repl    string
}

// New compiles a Cleaner for the given command table and label list.
func New(commands []MathCommand, labels []string) *Cleaner {
	c := &Cleaner{}
	for _, cmd := range commands {
		for _, a := range cmd.Anchors {
			c.mathRules = append(c.mathRules, mathRule{
				pattern: regexp.MustCompile(`(` + string(a) + `)[ \t]*` + regexp.QuoteMeta(cmd.Name)),
				repl:    `${1}\` + cmd.Name,
			})
		}
	}

	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	c.leading = regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(quoted, "|") + `)\s*:\s*`)
	c.markers = regexp.MustCompile(`(?i)\(\s*(?:true\s*/\s*false|đúng\s*/\s*sai)\s*\?\s*\)`)
	// The dash must start the line or follow whitespace so hyphenated prose
	// such as "question-answer: pairs" survives.
	c.trailing = regexp.MustCompile(`(?im)(?:^|\s)-\s*(?:answer\s+is|answer\s*:|đáp án là|đáp án\s*:).*`)
	return c
}

var defaultCleaner = New(DefaultMathCommands, DefaultLabels)

// Sanitize cleans raw text with the default rule set.
func Sanitize(raw string) string {
	return defaultCleaner.Sanitize(raw)
}

// Sanitize strips provider scaffolding and repairs math escapes. The rules
// run until the text stops changing, so the result is a fixed point:
// Sanitize(Sanitize(x)) == Sanitize(x). The loop terminates: every deletion
// removes at least one non-backslash rune, and every insertion escapes an
// occurrence no rule can match again.
func (c *Cleaner) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw
	for {
		next := c.pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func (c *Cleaner) pass(s string) string {
	for _, r := range c.mathRules {
		s = r.pattern.ReplaceAllString(s, r.repl)
	}
	s = c.markers.ReplaceAllString(s, "")
	s = c.trailing.ReplaceAllString(s, "")
	for {
		stripped := c.leading.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.TrimSpace(s)
}
