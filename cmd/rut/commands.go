package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rutkit/internal/platform/logger"
	"rutkit/internal/rut/handler"
	"rutkit/internal/rut/models"
	"rutkit/internal/rut/service"
	"rutkit/pkg/requestcontext"
	"rutkit/pkg/rut"
)

// CLI defines the command-line interface using Kong.
type CLI struct {
	JSON     bool   `name:"json" help:"Write JSON instead of plain text"`
	LogLevel string `name:"log-level" default:"error" enum:"debug,info,warn,error" help:"Log level for diagnostics on stderr"`

	Clean    CleanCmd    `cmd:"" help:"Strip whitespace, dots, commas and dashes"`
	Validate ValidateCmd `cmd:"" help:"Check RUTs; exits non-zero if any is invalid"`
	Format   FormatCmd   `cmd:"" help:"Render RUTs in canonical 12.345.678-5 form"`
	Digit    DigitCmd    `cmd:"" help:"Compute the verification digit of a body"`
	Generate GenerateCmd `cmd:"" help:"Generate consecutive valid RUTs"`
}

// Globals is bound into every command's Run method.
type Globals struct {
	JSON    bool
	Out     io.Writer
	Service *service.Service
}

func newGlobals(cli *CLI, out, errOut io.Writer) *Globals {
	return newGlobalsWithGenerator(cli, out, errOut, rut.NewGenerator(nil))
}

func newGlobalsWithGenerator(cli *CLI, out, errOut io.Writer, gen service.Generator) *Globals {
	logs := logger.New(errOut, "text", cli.LogLevel)
	return &Globals{
		JSON: cli.JSON,
		Out:  out,
		Service: service.New(
			service.WithLogger(logs),
			service.WithGenerator(gen),
			// The CLI is bounded by the caller's patience, not by request limits.
			service.WithLimits(1_000_000, 1_000_000),
		),
	}
}

func (g *Globals) writeJSON(v any) error {
	enc := json.NewEncoder(g.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (g *Globals) writeLines(lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(g.Out, l); err != nil {
			return err
		}
	}
	return nil
}

// CleanCmd strips separators.
type CleanCmd struct {
	RUTs []string `arg:"" name:"rut" help:"RUTs to clean"`
}

func (c *CleanCmd) Run(g *Globals) error {
	ctx := context.Background()
	out := make([]string, 0, len(c.RUTs))
	for _, r := range c.RUTs {
		out = append(out, g.Service.Clean(ctx, r))
	}
	if g.JSON {
		return g.writeJSON(out)
	}
	return g.writeLines(out)
}

// ValidateCmd checks RUTs.
type ValidateCmd struct {
	RUTs []string `arg:"" name:"rut" help:"RUTs to validate"`
}

func (c *ValidateCmd) Run(g *Globals) error {
	ctx := context.Background()
	result, err := g.Service.ValidateBatch(ctx, c.RUTs)
	if err != nil {
		return err
	}

	if g.JSON {
		resp := handler.FromBatch(result, requestcontext.Now(ctx))
		if err := g.writeJSON(resp); err != nil {
			return err
		}
	} else {
		lines := make([]string, 0, len(result.Results))
		for _, r := range result.Results {
			line := r.Input + "\t" + string(r.Outcome)
			if r.Outcome == models.OutcomeMismatch {
				line += "\texpected " + r.ExpectedDigit
			}
			lines = append(lines, line)
		}
		if err := g.writeLines(lines); err != nil {
			return err
		}
	}

	if result.InvalidCount > 0 {
		return fmt.Errorf("%d of %d RUTs are invalid", result.InvalidCount, len(result.Results))
	}
	return nil
}

// FormatCmd renders canonical form.
type FormatCmd struct {
	WithoutDV bool     `name:"without-dv" short:"b" help:"Arguments are bodies; compute the verification digit"`
	RUTs      []string `arg:"" name:"rut" help:"RUTs (or bodies with --without-dv) to format"`
}

func (c *FormatCmd) Run(g *Globals) error {
	ctx := context.Background()
	out := make([]string, 0, len(c.RUTs))
	for _, r := range c.RUTs {
		var (
			formatted string
			err       error
		)
		if c.WithoutDV {
			formatted, err = g.Service.FormatWithoutDV(ctx, r)
		} else {
			formatted, err = g.Service.Format(ctx, r)
		}
		if err != nil {
			return fmt.Errorf("format %q: %w", r, err)
		}
		out = append(out, formatted)
	}
	if g.JSON {
		return g.writeJSON(out)
	}
	return g.writeLines(out)
}

// DigitCmd computes verification digits.
type DigitCmd struct {
	Bodies []string `arg:"" name:"body" help:"Bodies to compute the verification digit for"`
}

func (c *DigitCmd) Run(g *Globals) error {
	ctx := context.Background()
	resp := make([]handler.DigitResponse, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		dv, err := g.Service.ComputeVerificationDigit(ctx, b)
		if err != nil {
			return fmt.Errorf("digit %q: %w", b, err)
		}
		resp = append(resp, handler.DigitResponse{Body: strings.TrimSpace(b), VerificationDigit: dv})
	}
	if g.JSON {
		return g.writeJSON(resp)
	}
	lines := make([]string, 0, len(resp))
	for _, r := range resp {
		lines = append(lines, r.VerificationDigit)
	}
	return g.writeLines(lines)
}

// GenerateCmd produces consecutive valid RUTs.
type GenerateCmd struct {
	Base  string `name:"base" help:"First body; random when empty or not numeric"`
	Count int    `name:"count" short:"n" default:"1" help:"Number of RUTs to generate"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	ruts, err := g.Service.Generate(context.Background(), c.Base, c.Count)
	if err != nil {
		return err
	}
	if g.JSON {
		return g.writeJSON(ruts)
	}
	return g.writeLines(ruts)
}
