// Package mcpserver exposes the planning tools to MCP clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/alexanderramin/counsel/internal/ontrack"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/repository"
	"github.com/alexanderramin/counsel/internal/service"
)

const (
	ToolEvaluateOnTrack    = "evaluate_on_track"
	ToolRecommendTopics    = "recommend_topics"
	ToolBuildAgenda        = "build_agenda"
	ToolFallbackAgendaText = "fallback_agenda_text"
)

// Server holds the services the tools call.
type Server struct {
	students service.StudentService
	planning service.PlanningService
	logger   *zap.Logger
	loc      *time.Location
}

// New builds the tool server. Meeting dates are read as wall-clock times in
// loc; nil means time.Local.
func New(students service.StudentService, planning service.PlanningService, loc *time.Location, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Server{students: students, planning: planning, logger: logger, loc: loc}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer("counsel", version, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool(ToolEvaluateOnTrack,
		mcp.WithDescription("Evaluate whether a student is on track, with the reasons and milestone completion."),
		mcp.WithString("student_id", mcp.Required(), mcp.Description("Student id")),
	), s.evaluateOnTrack)

	srv.AddTool(mcp.NewTool(ToolRecommendTopics,
		mcp.WithDescription("Recommend prioritized topics for the next counseling meeting."),
		mcp.WithString("student_id", mcp.Required(), mcp.Description("Student id")),
		mcp.WithBoolean("use_ai", mcp.Description("Ask the generative model first; falls back to the rule engine")),
	), s.recommendTopics)

	srv.AddTool(mcp.NewTool(ToolBuildAgenda,
		mcp.WithDescription("Split a meeting's minutes across selected topics and a wrap-up."),
		mcp.WithString("student_id", mcp.Required(), mcp.Description("Student id")),
		mcp.WithNumber("duration", mcp.Required(), mcp.Description("Meeting length in minutes")),
		mcp.WithArray("recommendation_ids",
			mcp.Description("Ids from recommend_topics (rule engine) to include"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("custom_topics",
			mcp.Description("Counselor topics to include"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.buildAgenda)

	srv.AddTool(mcp.NewTool(ToolFallbackAgendaText,
		mcp.WithDescription("Render the plain-text meeting agenda from the student's records."),
		mcp.WithString("student_id", mcp.Required(), mcp.Description("Student id")),
		mcp.WithString("meeting_date", mcp.Description("Meeting date-time, YYYY-MM-DDTHH:MM")),
	), s.fallbackAgendaText)

	return srv
}

// Serve speaks MCP on in and out until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, version string, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.MCPServer(version))
	return stdio.Listen(ctx, in, out)
}

func (s *Server) evaluateOnTrack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("student_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := s.students.OnTrack(ctx, id)
	if err != nil {
		return s.toolError(ToolEvaluateOnTrack, err)
	}
	return jsonResult(struct {
		Report *ontrack.Report `json:"report"`
		Stale  bool            `json:"stale"`
	}{report, report.Stale()})
}

func (s *Server) recommendTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("student_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.planning.RecommendTopics(ctx, id, req.GetBool("use_ai", false))
	if err != nil {
		return s.toolError(ToolRecommendTopics, err)
	}
	return jsonResult(result)
}

func (s *Server) buildAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("student_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	duration, err := req.RequireInt("duration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.planning.BuildAgenda(ctx, id, service.AgendaRequest{
		RecommendationIDs: req.GetStringSlice("recommendation_ids", nil),
		CustomTopics:      req.GetStringSlice("custom_topics", nil),
		Duration:          duration,
	})
	if err != nil {
		return s.toolError(ToolBuildAgenda, err)
	}
	return jsonResult(result)
}

func (s *Server) fallbackAgendaText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("student_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var meetingDate *time.Time
	if raw := req.GetString("meeting_date", ""); raw != "" {
		t, err := planner.ParseScheduledDate(raw, s.loc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		meetingDate = &t
	}
	result, err := s.planning.AgendaText(ctx, id, meetingDate, false)
	if err != nil {
		return s.toolError(ToolFallbackAgendaText, err)
	}
	return mcp.NewToolResultText(result.Text), nil
}

// toolError reports caller mistakes as tool errors the model can read and
// everything else as a protocol failure.
func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Error("mcp tool failed", zap.String("tool", tool), zap.Error(err))
	return nil, fmt.Errorf("%s: %w", tool, err)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
