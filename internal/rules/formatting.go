package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/mdast"
)

// FormattingChecker runs line-level rules over the raw source.
func FormattingChecker(cfg Config) *check.Checker {
	c := newChecker("Formatting", cfg,
		check.Rule{Name: "LineLength", Check: func(ctx *check.Context) []check.CheckError {
			var errs []check.CheckError
			for _, l := range sourceLines(ctx.Source) {
				if n := utf8.RuneCountInString(l.text); n > cfg.MaxLineLength {
					errs = append(errs, atDocument(ctx, ctx.Errorf("LineTooLong",
						"Line %d exceeds maximum length of %d characters (found %d characters)",
						l.number, cfg.MaxLineLength, n), l.rangeFrom(cfg.MaxLineLength)))
				}
			}
			return errs
		}},
		check.Rule{Name: "TrailingWhitespace", Check: checkTrailingWhitespace},
		check.Rule{Name: "EmptyLines", Check: checkEmptyLines},
	)
	c.Requires = []string{check.InputSource}
	return c
}

// atDocument places a line diagnostic at r and, when the AST is available,
// on the document node.
func atDocument(ctx *check.Context, e check.CheckError, r mdast.SourceRange) check.CheckError {
	if ctx.AST == nil {
		return e.AtRange(r)
	}
	return e.AtNode(ctx.AST.ID, mdast.Document, r)
}

type line struct {
	number int
	offset int
	text   string
}

// rangeFrom covers the line from the given rune column (0-based) to its end.
func (l line) rangeFrom(col int) mdast.SourceRange {
	start := l.offset + len(l.text)
	for i := range l.text {
		if col == 0 {
			start = l.offset + i
			break
		}
		col--
	}
	return mdast.SourceRange{
		StartOffset: start,
		EndOffset:   l.offset + len(l.text),
		Line:        l.number,
		Column:      utf8.RuneCountInString(l.text[:start-l.offset]) + 1,
	}
}

// sourceLines splits src on '\n', dropping a trailing '\r'. A final newline
// does not start another line.
func sourceLines(src string) []line {
	var out []line
	off := 0
	for n := 1; off < len(src); n++ {
		end := strings.IndexByte(src[off:], '\n')
		next := len(src)
		if end < 0 {
			end = len(src)
		} else {
			end += off
			next = end + 1
		}
		out = append(out, line{number: n, offset: off, text: strings.TrimSuffix(src[off:end], "\r")})
		off = next
	}
	return out
}

func checkTrailingWhitespace(ctx *check.Context) []check.CheckError {
	var errs []check.CheckError
	for _, l := range sourceLines(ctx.Source) {
		body := strings.TrimRight(l.text, " \t")
		trail := l.text[len(body):]
		if trail == "" {
			continue
		}
		r := l.rangeFrom(utf8.RuneCountInString(body))
		switch {
		case strings.ContainsRune(trail, '\t'):
			errs = append(errs, atDocument(ctx, ctx.Errorf("InvalidTrailingWhitespace",
				"Line %d has invalid trailing characters. Only 0 or 2 spaces are allowed at line end.", l.number), r))
		case len(trail) != 2:
			errs = append(errs, atDocument(ctx, ctx.Errorf("InvalidTrailingWhitespace",
				"Line %d has %d trailing spaces. Only 0 or 2 spaces are allowed at line end.", l.number, len(trail)), r))
		}
	}
	return errs
}

// checkEmptyLines warns on every blank line that follows another blank line,
// outside code blocks.
func checkEmptyLines(ctx *check.Context) []check.CheckError {
	var code []mdast.SourceRange
	if ctx.AST != nil {
		for _, n := range mdast.All(ctx.AST, mdast.CodeBlock) {
			code = append(code, n.Range)
		}
	}
	inCode := func(off int) bool {
		for _, r := range code {
			if off >= r.StartOffset && off < r.EndOffset {
				return true
			}
		}
		return false
	}

	var errs []check.CheckError
	prevBlank := false
	for _, l := range sourceLines(ctx.Source) {
		blank := strings.TrimSpace(l.text) == ""
		if blank && prevBlank && !inCode(l.offset) {
			errs = append(errs, atDocument(ctx, ctx.Warnf("EmptyLineGroup",
				"Line %d is an extra empty line. Use a single empty line between blocks.", l.number), l.rangeFrom(0)))
		}
		prevBlank = blank
	}
	return errs
}
