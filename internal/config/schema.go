package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
)

//go:embed schema/buildconfig.cue
var buildConfigSchemaCUE []byte

// compileSchema compiles the embedded schema in ctx and returns #BuildConfig.
func compileSchema(ctx *cue.Context) (cue.Value, error) {
	schema := ctx.CompileBytes(buildConfigSchemaCUE, cue.Filename("schema/buildconfig.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling embedded schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#BuildConfig"))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("looking up #BuildConfig: %w", err)
	}
	return def, nil
}
