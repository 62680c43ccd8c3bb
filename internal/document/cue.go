package document

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource []byte

// SchemaError is a CUE compile or validation failure with its source position.
type SchemaError struct {
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// decodeCUE compiles data, unifies it with #Sheet, and decodes the result.
func decodeCUE(data []byte, name string) (*Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Sheet"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("sheet schema: %w", err)
	}

	if name == "" {
		name = "sheet.cue"
	}
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}
	return &doc, nil
}

// encodeCUE renders doc as CUE source.
func encodeCUE(doc *Document) ([]byte, error) {
	v := cuecontext.New().Encode(doc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to encode CUE: %w", err)
	}
	out, err := format.Node(v.Syntax())
	if err != nil {
		return nil, fmt.Errorf("failed to format CUE: %w", err)
	}
	return out, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &SchemaError{Message: first.Error(), Pos: positions[0]}
	}
	return &SchemaError{Message: first.Error()}
}
