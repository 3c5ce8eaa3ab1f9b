// Package mcp exposes the refinement engine as an MCP server, so agent
// hosts can ask questions over the structured data through a single tool.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/requery"
	"github.com/aretw0/requery/pkg/domain"
)

// AskResult is the structured output of the ask_question tool.
type AskResult struct {
	InvocationID string `json:"invocation_id" jsonschema_description:"Correlation ID of the invocation"`
	Answer       string `json:"answer" jsonschema_description:"Final natural-language answer"`
	Attempts     int    `json:"attempts" jsonschema_description:"Generate/judge cycles used"`
	Refinements  int    `json:"refinements" jsonschema_description:"Number of question rephrasings"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Invoke(ctx context.Context, question string) (domain.Transcript, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("requery-mcp", strings.TrimSpace(requery.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask_question",
		mcp.WithDescription("Answer a natural-language question about the connected structured data. The question is translated to a query, the result is judged for relevance and the question is refined automatically until the result passes or the retry budget is spent."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The natural-language question to answer")),
		mcp.WithOutputSchema[AskResult](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AskResult, error) {
	question, _ := args["question"].(string)
	t, err := s.engine.Invoke(ctx, question)
	if err != nil {
		return AskResult{}, fmt.Errorf("ask failed: %w", err)
	}
	return AskResult{
		InvocationID: t.ID,
		Answer:       t.Answer,
		Attempts:     t.Attempts,
		Refinements:  len(t.QuestionHistory),
	}, nil
}
