// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"context"
	"fmt"
)

// CompileProgram compiles TEAL source through the configured compiler,
// memoizing the result per source text. Repeated calls with identical
// source return the cached result without contacting the compiler again.
func (c *Composer) CompileProgram(ctx context.Context, source string) (*CompileResult, error) {
	if c.compiler == nil {
		return nil, ErrNoCompiler
	}
	if cached, ok := c.compileCache[source]; ok {
		return cached, nil
	}
	result, err := c.compiler.Compile(ctx, []byte(source))
	if err != nil {
		return nil, fmt.Errorf("failed to compile program: %w", err)
	}
	c.compileCache[source] = result
	return result, nil
}

// CompiledProgram returns the cached compilation result for a source text,
// if one exists.
func (c *Composer) CompiledProgram(source string) (*CompileResult, bool) {
	result, ok := c.compileCache[source]
	return result, ok
}
