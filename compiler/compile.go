// Package compiler wires the lexer, file parsers and schema resolver into
// the single pure function spec.md §5 describes: (server-source-list,
// client-source-list) → Program. Nothing in this package touches disk,
// stdout, or a config file — those stay with cmd/gqlc, the external
// collaborator spec.md §1 carves out of the core.
package compiler

import (
	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/parser"
	"github.com/shyptr/gqlc/schema"
)

// SourceFile is a source file's absolute path and its raw byte buffer,
// treated as UTF-8 (spec.md §3.1). Reading the file off disk is the
// caller's job; the compiler only ever sees the pair.
type SourceFile struct {
	Path string
	Src  string
}

// Compile runs the full pipeline over a set of server (SDL) files and a
// set of client (operation) files and returns the fully resolved Program.
// On the first error anywhere in lexing, parsing or resolution, Compile
// returns immediately with that single error and no partially observable
// schema (spec.md §5: "a parse/resolve call that raises an error leaves no
// partially observable registry to the caller").
func Compile(serverFiles, clientFiles []SourceFile) (*schema.Program, *errors.GraphQLError) {
	serverASTs := make([]*ast.ServerFile, 0, len(serverFiles))
	for _, f := range serverFiles {
		file, err := parser.ParseServerSource(f.Path, f.Src)
		if err != nil {
			return nil, err
		}
		serverASTs = append(serverASTs, file)
	}

	clientASTs := make([]*ast.ClientFile, 0, len(clientFiles))
	for _, f := range clientFiles {
		file, err := parser.ParseClientSource(f.Path, f.Src)
		if err != nil {
			return nil, err
		}
		clientASTs = append(clientASTs, file)
	}

	registry, err := schema.ResolveServer(serverASTs)
	if err != nil {
		return nil, err
	}
	if err := schema.ResolveClient(registry, clientASTs); err != nil {
		return nil, err
	}

	return &schema.Program{
		Server: registry.ServerSchema(),
		Client: registry.ClientSchema(),
	}, nil
}
