package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/lenscheck/internal/answers"
	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/render"
	"github.com/dshills/lenscheck/internal/schema"
)

// ScoreTool handles the lens_score MCP tool.
type ScoreTool struct {
	deps Deps
}

// NewScoreTool creates a ScoreTool. deps.Store may be nil.
func NewScoreTool(deps Deps) *ScoreTool {
	return &ScoreTool{deps: deps}
}

// Definition returns the MCP tool definition for registration.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("lens_score",
		mcp.WithDescription(
			"Score a set of 0-4 answers against a lens and return the readout: "+
				"overall percentage, per-variable zones, dominant distortions, "+
				"the smallest lever and next focus targets.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`Answers as JSON or YAML, either {"q_id": n} or {"lens": "...", "answers": {"q_id": n}}`),
		),
		mcp.WithString("lens",
			mcp.Description("Lens name; overrides any lens named in the answers"),
		),
		mcp.WithString("rank",
			mcp.Description("Ranking mode: favorability (default) or drivers"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: md (default) or json"),
		),
	)
}

// Handle processes the lens_score tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := strings.TrimSpace(req.GetString("answers", ""))
	if raw == "" {
		return mcp.NewToolResultError("'answers' is required"), nil
	}

	sheet, err := answers.Parse([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid answers: %v", err)), nil
	}

	name := req.GetString("lens", "")
	if name == "" {
		name = sheet.Lens
	}
	if name == "" {
		name = t.deps.DefaultLens
	}
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode := t.deps.DefaultRank
	if r := req.GetString("rank", ""); r != "" || !mode.Valid() {
		m, ok := assess.ParseRankMode(r)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown rank mode %q", r)), nil
		}
		mode = m
	}

	format := req.GetString("format", "md")
	if format != "md" && format != "json" {
		return mcp.NewToolResultError("'format' must be md or json"), nil
	}

	rep, err := render.Build(l, sheet.Answers, mode, render.Input{AnswersHash: sheet.Hash}, t.deps.Version)
	if errors.Is(err, assess.ErrAnswerOutOfRange) {
		var msgs []string
		for _, e := range schema.ValidateAnswers(l.Bank, sheet.Answers) {
			msgs = append(msgs, e.Error())
		}
		return mcp.NewToolResultError("invalid answers:\n" + strings.Join(msgs, "\n")), nil
	}
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	runID := ""
	if t.deps.Store != nil && len(rep.Result.PerVariable) > 0 {
		run := history.NewRun(rep, sheet.Answers, "mcp")
		if err := t.deps.Store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("saving run: %w", err)
		}
		runID = run.ID
	}

	if format == "json" {
		data, err := render.JSON(rep)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	out := render.Markdown(rep)
	if runID != "" {
		out += fmt.Sprintf("\nSaved as `%s`.\n", runID)
	}
	return mcp.NewToolResultText(out), nil
}
