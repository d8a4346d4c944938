// Command gqlc is the thin external-collaborator CLI shell spec.md §6.3
// describes: it discovers source files, drives the compiler package, and
// renders the resulting schema or diagnostics. It contains no compiler
// logic of its own.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/shyptr/gqlc/compiler"
	"github.com/shyptr/gqlc/config"
	gqlerrors "github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/jsonschema"
	"github.com/shyptr/gqlc/schema"
)

func main() {
	app := &cli.App{
		Name:  "gqlc",
		Usage: "compile GraphQL schema and operation documents into a canonical JSON schema graph",
		Commands: []*cli.Command{
			parseDirCommand(),
			generateCommand(),
			validateCommand(),
			serveCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func parseDirCommand() *cli.Command {
	return &cli.Command{
		Name:  "parse-dir",
		Usage: "compile the server and client documents found under two directories",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server-dir", Required: true},
			&cli.StringFlag{Name: "client-dir", Required: true},
			&cli.StringFlag{Name: "output-server-file", Required: true},
			&cli.StringFlag{Name: "output-client-file", Required: true},
			&cli.BoolFlag{Name: "validate"},
		},
		Action: func(c *cli.Context) error {
			return runParseDir(
				c.Context,
				c.String("server-dir"), c.String("client-dir"),
				c.String("output-server-file"), c.String("output-client-file"),
				c.Bool("validate"),
			)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "compile per a gql.yaml config and write the JSON schema files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "gql.yaml"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return runParseDir(
				c.Context,
				cfg.ServerDir, cfg.ClientDir,
				cfg.OutputServerFile, cfg.OutputClientFile,
				false,
			)
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "compile per a gql.yaml config and fail if the on-disk JSON is stale",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "gql.yaml"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return runParseDir(
				c.Context,
				cfg.ServerDir, cfg.ClientDir,
				cfg.OutputServerFile, cfg.OutputClientFile,
				true,
			)
		},
	}
}

// runParseDir is shared by parse-dir, generate and validate: they differ
// only in where their directories/output paths come from and whether
// --validate is forced on.
func runParseDir(ctx context.Context, serverDir, clientDir, outServer, outClient string, validate bool) error {
	serverFiles, err := loadSources(ctx, serverDir)
	if err != nil {
		return err
	}
	clientFiles, err := loadSources(ctx, clientDir)
	if err != nil {
		return err
	}

	prog, compileErr := compiler.Compile(serverFiles, clientFiles)
	if compileErr != nil {
		sources := sourcesOf(serverFiles, clientFiles)
		fmt.Fprint(os.Stderr, reportErrors([]*gqlerrors.GraphQLError{compileErr}, sources))
		return cli.Exit("", 1)
	}

	data, err := encode(prog)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if validate {
		return validateAgainstDisk(data, outServer, outClient)
	}
	if err := writeOutput(outServer, data); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return writeOutput(outClient, data)
}

// encode serializes the full program once; parse-dir's two output paths
// both receive the same combined { server, client } document (spec.md
// §6.2's top-level shape is one document, not two).
func encode(prog *schema.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := jsonschema.Encode(&buf, prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(path, data, 0o644)
}

func validateAgainstDisk(data []byte, outServer, outClient string) error {
	for _, path := range []string{outServer, outClient} {
		if path == "-" {
			continue
		}
		onDisk, err := ioutil.ReadFile(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if !bytes.Equal(onDisk, data) {
			return cli.Exit(fmt.Sprintf("gqlc: %s is stale", path), 1)
		}
	}
	return nil
}
