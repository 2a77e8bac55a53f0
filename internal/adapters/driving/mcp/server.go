package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/services"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const defaultSettleTimeout = 10 * time.Second

// Server is the MCP server for a browsing session.
type Server struct {
	ports  *Ports
	server *mcp.Server

	// settleTimeout bounds how long a tool waits for a fetch to finish.
	settleTimeout time.Duration
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "catalogue",
		Version: Version,
	}

	s := &Server{
		ports:         ports,
		server:        mcp.NewServer(impl, nil),
		settleTimeout: defaultSettleTimeout,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	defer s.observe()()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	defer s.observe()()

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// observe keeps the session's fetch pipeline alive while the server runs.
func (s *Server) observe() func() {
	return s.ports.Browser.SubscribeStatus(func(status domain.FetchStatus) {
		logger.Debug("mcp: status %s", status)
	})
}

// settle waits until the session is no longer loading and returns its state.
func (s *Server) settle(ctx context.Context) domain.Snapshot {
	return services.Settle(ctx, s.ports.Browser, s.settleTimeout)
}
