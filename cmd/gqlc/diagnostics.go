package main

import (
	"fmt"
	"strings"

	"github.com/shyptr/gqlc/compiler"
	gqlerrors "github.com/shyptr/gqlc/errors"
)

// sourceByFile is resolved at report time against whatever source files
// were loaded for this run, so a diagnostic can quote the line it points
// at even though the error itself only carries a file path and location.
type sourceByFile map[string]string

func sourcesOf(sets ...[]compiler.SourceFile) sourceByFile {
	m := make(sourceByFile)
	for _, set := range sets {
		for _, f := range set {
			m[f.Path] = f.Src
		}
	}
	return m
}

// reportError renders err the way the gql_cli formatting collaborator does
// (spec.md §7; grounded on
// _examples/original_source/cpp/gql/src/gql_cli/src/app/formatting/error.cpp):
// the message, then the source line the error's first location falls on
// with four lines of context on either side, with the offending span
// underscored by carets.
func reportError(err *gqlerrors.GraphQLError, sources sourceByFile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s", err.Message)
	if err.Rule != "" {
		fmt.Fprintf(&b, " [%s]", err.Rule)
	}
	b.WriteString("\n")

	if err.File == "" || len(err.Locations) == 0 {
		return b.String()
	}
	src, ok := sources[err.File]
	if !ok {
		return b.String()
	}

	loc := err.Locations[0]
	lines := strings.Split(src, "\n")
	lo := loc.Line - 4
	if lo < 0 {
		lo = 0
	}
	hi := loc.Line + 4
	if hi >= len(lines) {
		hi = len(lines) - 1
	}

	fmt.Fprintf(&b, "  --> %s:%d\n", err.File, loc.Line+1)
	for i := lo; i <= hi; i++ {
		fmt.Fprintf(&b, "%5d | %s\n", i+1, lines[i])
		if i == loc.Line {
			b.WriteString("      | ")
			if !loc.Unset() {
				b.WriteString(strings.Repeat(" ", int(loc.StartColumn)))
				width := int(loc.EndColumn) - int(loc.StartColumn) + 1
				if width < 1 {
					width = 1
				}
				b.WriteString(strings.Repeat("^", width))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// reportErrors renders every error in errs, in order, separated by a
// blank line.
func reportErrors(errs []*gqlerrors.GraphQLError, sources sourceByFile) string {
	var parts []string
	for _, err := range errs {
		parts = append(parts, reportError(err, sources))
	}
	return strings.Join(parts, "\n")
}
