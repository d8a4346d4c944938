package schema

import (
	"strconv"
	"strings"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
)

// resolveLiteral checks lit against the declared type spec and produces
// its resolved Literal value (spec.md §4.4). Only scalars and enums admit
// a literal; input objects and list types are rejected here (a raw
// ast.Literal never spells an object or array — those come through
// ArgumentValue/ArrayLiteral machinery instead).
func resolveLiteral(lit *ast.Literal, spec InputTypeSpec, file string) (Literal, *errors.GraphQLError) {
	switch t := spec.(type) {
	case *Scalar:
		return resolveScalarLiteral(lit, t, file)
	case *EnumDef:
		return resolveEnumLiteral(lit, t, file)
	default:
		return Literal{}, errors.New("type %q cannot take a literal value", spec.TypeName()).
			WithLocation(lit.Loc).WithFile(file).WithRule(errors.LiteralOnNonScalar)
	}
}

func resolveScalarLiteral(lit *ast.Literal, scalar *Scalar, file string) (Literal, *errors.GraphQLError) {
	switch scalar.Name {
	case "Int":
		if lit.Kind != ast.IntLiteral {
			return Literal{}, wrongLiteralKind(lit, "Int", file)
		}
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			return Literal{}, errors.New("%q is not a valid Int literal", lit.Value).
				WithLocation(lit.Loc).WithFile(file).WithRule(errors.LiteralOnNonScalar)
		}
		return Literal{Kind: LitInt, Int: n}, nil
	case "Float":
		if lit.Kind != ast.FloatLiteral && lit.Kind != ast.IntLiteral {
			return Literal{}, wrongLiteralKind(lit, "Float", file)
		}
		// The lexer accumulates a canonical trailing `f` into the NUMBER
		// lexeme itself (lexer/lexer.go's numberContinues), so "1.2f" is the
		// normal on-the-wire spelling of a Float literal; strip it before
		// handing the digits to strconv, which has no notion of the suffix.
		f, err := strconv.ParseFloat(strings.TrimSuffix(lit.Value, "f"), 64)
		if err != nil {
			return Literal{}, errors.New("%q is not a valid Float literal", lit.Value).
				WithLocation(lit.Loc).WithFile(file).WithRule(errors.LiteralOnNonScalar)
		}
		return Literal{Kind: LitFloat, Float: f}, nil
	case "String":
		if lit.Kind != ast.StringLiteral {
			return Literal{}, wrongLiteralKind(lit, "String", file)
		}
		return Literal{Kind: LitString, Str: lit.Value}, nil
	case "Boolean":
		if lit.Kind != ast.BooleanLiteral {
			return Literal{}, wrongLiteralKind(lit, "Boolean", file)
		}
		return Literal{Kind: LitBool, Bool: lit.Bool}, nil
	default:
		// user-declared scalar: accepted as an opaque string, the same
		// leniency the original affords custom scalars with no parse rule.
		return Literal{Kind: LitString, Str: lit.Value}, nil
	}
}

func resolveEnumLiteral(lit *ast.Literal, enum *EnumDef, file string) (Literal, *errors.GraphQLError) {
	if lit.Kind != ast.EnumLiteral {
		return Literal{}, wrongLiteralKind(lit, enum.Name, file)
	}
	for _, v := range enum.Values {
		if v == lit.Value {
			return Literal{Kind: LitEnum, Str: lit.Value}, nil
		}
	}
	return Literal{}, errors.New("%q is not a value of enum %q", lit.Value, enum.Name).
		WithLocation(lit.Loc).WithFile(file).WithRule(errors.InvalidEnumValue)
}

func wrongLiteralKind(lit *ast.Literal, typeName, file string) *errors.GraphQLError {
	return errors.New("literal does not match declared type %q", typeName).
		WithLocation(lit.Loc).WithFile(file).WithRule(errors.LiteralOnNonScalar)
}
