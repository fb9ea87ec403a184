package extract

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

const directivePrefix = "//marker:"

// directive is one //marker:<name> comment line.
type directive struct {
	name    string
	pos     token.Pos // start of the comment
	args    []arg
	rest    string // text after the name, trimmed
	restPos token.Pos
}

// arg is a comma or space separated token of a directive.
type arg struct {
	text string
	pos  token.Pos
}

func (d directive) isIdent(i int) bool { return token.IsIdentifier(d.args[i].text) }

// directives returns the //marker: lines of the given comment groups in
// source order. Groups may be nil.
func directives(groups ...*ast.CommentGroup) []directive {
	var out []directive
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if d, ok := parseDirective(c); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

func parseDirective(c *ast.Comment) (directive, bool) {
	if !strings.HasPrefix(c.Text, directivePrefix) {
		return directive{}, false
	}
	body := c.Text[len(directivePrefix):]
	end := strings.IndexAny(body, " \t")
	if end < 0 {
		end = len(body)
	}
	d := directive{name: body[:end], pos: c.Slash}
	if d.name == "" {
		return directive{}, false
	}
	base := len(directivePrefix) + end
	tail := c.Text[base:]
	lead := len(tail) - len(strings.TrimLeft(tail, " \t"))
	d.rest = strings.TrimSpace(tail)
	d.restPos = c.Slash + token.Pos(base+lead)

	start := -1
	for i := 0; i <= len(tail); i++ {
		sep := i == len(tail) || tail[i] == ' ' || tail[i] == '\t' || tail[i] == ','
		switch {
		case sep && start >= 0:
			d.args = append(d.args, arg{text: tail[start:i], pos: c.Slash + token.Pos(base+start)})
			start = -1
		case !sep && start < 0:
			start = i
		}
	}
	return d, true
}

// text returns the directive's free-form argument. A quoted Go string is
// unquoted; anything else is taken verbatim.
func (d directive) text() string {
	if s, err := strconv.Unquote(d.rest); err == nil {
		return s
	}
	return d.rest
}

// quotedPair parses two quoted Go strings, e.g. `"Thread" "main"`.
func (d directive) quotedPair() (string, string, bool) {
	rest := d.rest
	first, err := strconv.QuotedPrefix(rest)
	if err != nil {
		return "", "", false
	}
	rest = strings.TrimSpace(rest[len(first):])
	second, err := strconv.QuotedPrefix(rest)
	if err != nil || strings.TrimSpace(rest[len(second):]) != "" {
		return "", "", false
	}
	a, _ := strconv.Unquote(first)
	b, _ := strconv.Unquote(second)
	return a, b, true
}
