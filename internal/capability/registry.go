package capability

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"eqbridge/internal/bridge"
	"eqbridge/internal/config"
	"eqbridge/pkg/logging"
)

// ToolProvider is what the registry needs from a registered agent beyond
// its lifecycle: the tools it contributes.
type ToolProvider interface {
	Tools() []server.ServerTool
}

// Registry hosts the MCP server that capability agents register their
// tools into. Depending on configuration the server is reachable over SSE
// or stdio, or not started at all.
type Registry struct {
	cfg     config.CapabilityConfig
	version string

	mu        sync.Mutex
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
	started   bool
}

var _ bridge.Registrar = (*Registry)(nil)

// NewRegistry creates a registry for the given capability configuration.
func NewRegistry(cfg config.CapabilityConfig, version string) *Registry {
	return &Registry{cfg: cfg, version: version}
}

// Start brings the MCP server up on the configured transport. With the
// capability interface disabled it does nothing; agents registered later
// are silently accepted and never exposed.
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("capability registry already started")
	}
	if !r.cfg.CapabilityEnabled() {
		logging.Info(subsystem, "capability interface disabled, not starting MCP server")
		return nil
	}

	r.mcpServer = server.NewMCPServer(
		"eqbridge",
		r.version,
		server.WithToolCapabilities(true),
	)

	switch r.cfg.Transport {
	case config.TransportStdio:
		mcpServer := r.mcpServer
		go func() {
			if err := server.ServeStdio(mcpServer); err != nil {
				logging.Error(subsystem, err, "stdio server error")
			}
		}()
		logging.Info(subsystem, "serving MCP capability over stdio")

	case config.TransportSSE, "":
		baseURL := fmt.Sprintf("http://%s:%d", r.cfg.Host, r.cfg.Port)
		r.sseServer = server.NewSSEServer(
			r.mcpServer,
			server.WithBaseURL(baseURL),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)

		addr := fmt.Sprintf("%s:%d", r.cfg.Host, r.cfg.Port)
		sseServer := r.sseServer
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error(subsystem, err, "SSE server error")
			}
		}()
		logging.Info(subsystem, "serving MCP capability on %s/sse", baseURL)

	default:
		r.mcpServer = nil
		return fmt.Errorf("unknown capability transport %q", r.cfg.Transport)
	}

	r.started = true
	return nil
}

// RegisterCapability adds the agent's tools to the hosted server. With the
// capability interface disabled this is a no-op; the agent still takes
// part in the bridge lifecycle.
func (r *Registry) RegisterCapability(agent bridge.CapabilityAgent) error {
	provider, ok := agent.(ToolProvider)
	if !ok {
		return fmt.Errorf("capability agent does not provide tools")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tools := provider.Tools()
	if r.mcpServer == nil {
		logging.Debug(subsystem, "capability interface disabled, dropping %d tools", len(tools))
		return nil
	}
	r.mcpServer.AddTools(tools...)
	logging.Info(subsystem, "registered %d equalizer tools", len(tools))
	return nil
}

// Stop shuts the transport down. Safe to call without a prior Start.
func (r *Registry) Stop(ctx context.Context) error {
	r.mu.Lock()
	sseServer := r.sseServer
	r.sseServer = nil
	r.mcpServer = nil
	r.started = false
	r.mu.Unlock()

	if sseServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down SSE server: %w", err)
	}
	logging.Info(subsystem, "capability MCP server stopped")
	return nil
}
