package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/termuxdev"
	"github.com/aretw0/termuxdev/pkg/catalog"
	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// CatalogURI identifies the catalog resource.
const CatalogURI = "termuxdev://catalog"

// SetupStepsResponse is the structured output of list_setup_steps.
type SetupStepsResponse struct {
	Steps []catalog.SetupStep `json:"steps" jsonschema_description:"Setup steps in the order they should be run"`
}

// PackageSourcesResponse is the structured output of list_package_sources.
type PackageSourcesResponse struct {
	Sources []catalog.PackageSource `json:"sources" jsonschema_description:"Termux package repositories"`
	RepoFix catalog.RepoFix         `json:"repo_fix" jsonschema_description:"Command to switch mirrors when a repository fails"`
}

type askArgs struct {
	Query string `mapstructure:"query"`
}

type generateArgs struct {
	Details string `mapstructure:"details"`
}

type workflowArgs struct {
	Name string `mapstructure:"name"`
}

// Server exposes a ports.Service as an MCP Server.
type Server struct {
	service   ports.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(service ports.Service, opts ...Option) *Server {
	s := &Server{
		service:   service,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("termuxdev-mcp", termuxdev.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("ask_termux_advice",
		mcp.WithDescription("Ask the Termux/Android developer assistant about Java, Gradle, packages or GitHub Actions."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question, in plain text")),
	), s.handleAsk)

	s.mcpServer.AddTool(mcp.NewTool("generate_workflow",
		mcp.WithDescription("Generate a GitHub Actions YAML workflow for a Java/Gradle project."),
		mcp.WithString("details", mcp.Required(), mcp.Description("A short description of the project")),
	), s.handleGenerateWorkflow)

	s.mcpServer.AddTool(mcp.NewTool("list_setup_steps",
		mcp.WithDescription("List the commands that install Java and Gradle in Termux."),
		mcp.WithOutputSchema[SetupStepsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListSetupSteps))

	s.mcpServer.AddTool(mcp.NewTool("list_package_sources",
		mcp.WithDescription("List the Termux package repositories and the mirror fix command."),
		mcp.WithOutputSchema[PackageSourcesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListPackageSources))

	s.mcpServer.AddTool(mcp.NewTool("get_workflow_template",
		mcp.WithDescription("Return a ready-made GitHub Actions workflow template."),
		mcp.WithString("name", mcp.Description("Template name (optional, defaults to the first template)")),
	), s.handleGetWorkflowTemplate)
}

func decodeArgs(request mcp.CallToolRequest, out any) error {
	return mapstructure.Decode(request.GetArguments(), out)
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args askArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	answer, err := s.service.Ask(ctx, args.Query)
	if err != nil {
		s.logger.Warn("MCP Ask: Query rejected", "error", err, "size", len(args.Query))
		return mcp.NewToolResultError(fmt.Sprintf("query rejected: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}

func (s *Server) handleGenerateWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args generateArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	out, err := s.service.GenerateWorkflow(ctx, args.Details)
	if err != nil {
		s.logger.Warn("MCP GenerateWorkflow: Details rejected", "error", err, "size", len(args.Details))
		return mcp.NewToolResultError(fmt.Sprintf("details rejected: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleListSetupSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SetupStepsResponse, error) {
	return SetupStepsResponse{Steps: s.service.Catalog().SetupSteps}, nil
}

func (s *Server) handleListPackageSources(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PackageSourcesResponse, error) {
	c := s.service.Catalog()
	return PackageSourcesResponse{Sources: c.PackageSources, RepoFix: c.RepoFix}, nil
}

func (s *Server) handleGetWorkflowTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args workflowArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	c := s.service.Catalog()
	var (
		wf catalog.WorkflowTemplate
		ok bool
	)
	if strings.TrimSpace(args.Name) == "" {
		wf, ok = c.DefaultWorkflow()
	} else {
		wf, ok = c.Workflow(args.Name)
	}
	if !ok {
		names := make([]string, 0, len(c.Workflows))
		for _, w := range c.Workflows {
			names = append(names, w.Name)
		}
		return mcp.NewToolResultError(fmt.Sprintf("unknown workflow %q (available: %s)", args.Name, strings.Join(names, ", "))), nil
	}
	return mcp.NewToolResultText(wf.Content), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "TermuxDev Catalog",
		mcp.WithResourceDescription("Setup steps, package sources, workflow templates and links"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.service.Catalog())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
