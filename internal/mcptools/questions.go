package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/session"
)

// QuestionsTool handles the lens_questions MCP tool.
type QuestionsTool struct {
	defaultLens string
}

// NewQuestionsTool creates a QuestionsTool.
func NewQuestionsTool(defaultLens string) *QuestionsTool {
	return &QuestionsTool{defaultLens: defaultLens}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("lens_questions",
		mcp.WithDescription(
			"Return a lens questionnaire to present to the user. "+
				"Answers use a 0-4 scale; pass them back to lens_score.",
		),
		mcp.WithString("lens",
			mcp.Description("Lens name: interpersonal, financial, big-picture or universal"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of questions (default 25)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Shuffle seed; 0 keeps the bank order"),
		),
	)
}

// Handle processes the lens_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("lens", t.defaultLens)
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	count := intArg(req, "count", session.DefaultQuestionCount)
	seed := intArg(req, "seed", 0)
	if count <= 0 || seed < 0 {
		return mcp.NewToolResultError("'count' must be positive and 'seed' non-negative"), nil
	}

	qs := l.Questions(0)
	if seed != 0 {
		qs = session.Shuffle(qs, uint64(seed))
	}
	if len(qs) > count {
		qs = qs[:count]
	}
	return mcp.NewToolResultText(lens.FormatQuestionnaire(l, qs)), nil
}
