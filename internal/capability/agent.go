package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"eqbridge/internal/manager"
	"eqbridge/pkg/logging"
)

const subsystem = "Capability"

// ErrNilManager is returned when an agent is constructed without a manager.
var ErrNilManager = errors.New("equalizer manager is nil")

// Agent exposes one equalizer manager as a set of MCP tools.
type Agent struct {
	mu  sync.RWMutex
	mgr *manager.Manager

	shutdownOnce sync.Once
}

// NewAgent creates an agent for the given manager.
func NewAgent(mgr *manager.Manager) (*Agent, error) {
	if mgr == nil {
		return nil, ErrNilManager
	}
	return &Agent{mgr: mgr}, nil
}

// Tools returns the agent's tool definitions paired with their handlers.
func (a *Agent) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("equalizer_get_band_levels",
				mcp.WithDescription("Get the current equalizer band levels, the supported bands, and the configured level range"),
			),
			Handler: a.handleGetBandLevels,
		},
		{
			Tool: mcp.NewTool("equalizer_set_band_levels",
				mcp.WithDescription("Set absolute gain levels for equalizer bands. Levels outside the configured range are clamped."),
				mcp.WithObject("levels",
					mcp.Required(),
					mcp.Description("Band name to level map, e.g. {\"BASS\": 3, \"TREBLE\": -2}"),
				),
			),
			Handler: a.handleSetBandLevels,
		},
		{
			Tool: mcp.NewTool("equalizer_adjust_band_levels",
				mcp.WithDescription("Adjust equalizer band levels by relative deltas. Results are clamped to the configured range."),
				mcp.WithObject("deltas",
					mcp.Required(),
					mcp.Description("Band name to delta map, e.g. {\"BASS\": 1, \"MID\": -1}"),
				),
			),
			Handler: a.handleAdjustBandLevels,
		},
		{
			Tool: mcp.NewTool("equalizer_reset_bands",
				mcp.WithDescription("Reset equalizer bands to the default level"),
				mcp.WithString("bands",
					mcp.Description("Comma-separated band names to reset. Omit to reset every band."),
				),
			),
			Handler: a.handleResetBands,
		},
	}
}

func (a *Agent) manager() *manager.Manager {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mgr
}

// Shutdown releases the agent's manager reference. Tool calls after
// shutdown report an error instead of touching a dead manager.
func (a *Agent) Shutdown() {
	a.shutdownOnce.Do(func() {
		logging.Info(subsystem, "equalizer capability agent shut down")
		a.mu.Lock()
		a.mgr = nil
		a.mu.Unlock()
	})
}

type stateResult struct {
	Levels         map[string]int `json:"levels"`
	SupportedBands []string       `json:"supportedBands"`
	MinLevel       int            `json:"minLevel"`
	MaxLevel       int            `json:"maxLevel"`
}

func (a *Agent) handleGetBandLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mgr := a.manager()
	if mgr == nil {
		return mcp.NewToolResultError("equalizer is shut down"), nil
	}

	result := stateResult{
		Levels:         mgr.BandLevels(),
		SupportedBands: mgr.SupportedBands(),
		MinLevel:       mgr.MinimumBandLevel(),
		MaxLevel:       mgr.MaximumBandLevel(),
	}
	sort.Strings(result.SupportedBands)

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format state: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (a *Agent) handleSetBandLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mgr := a.manager()
	if mgr == nil {
		return mcp.NewToolResultError("equalizer is shut down"), nil
	}

	levels, errResult := bandLevelArgument(request, "levels")
	if errResult != nil {
		return errResult, nil
	}
	if errResult := checkSupported(mgr, levels); errResult != nil {
		return errResult, nil
	}

	// The manager stores absolute levels verbatim, so clamp here.
	min, max := mgr.MinimumBandLevel(), mgr.MaximumBandLevel()
	for name, level := range levels {
		if level < min {
			levels[name] = min
		} else if level > max {
			levels[name] = max
		}
	}

	logging.Debug(subsystem, "tool set band levels %v", levels)
	mgr.SetBandLevels(levels)
	return a.handleGetBandLevels(ctx, request)
}

func (a *Agent) handleAdjustBandLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mgr := a.manager()
	if mgr == nil {
		return mcp.NewToolResultError("equalizer is shut down"), nil
	}

	deltas, errResult := bandLevelArgument(request, "deltas")
	if errResult != nil {
		return errResult, nil
	}
	if errResult := checkSupported(mgr, deltas); errResult != nil {
		return errResult, nil
	}

	logging.Debug(subsystem, "tool adjust band levels %v", deltas)
	mgr.AdjustBandLevels(deltas)
	return a.handleGetBandLevels(ctx, request)
}

func (a *Agent) handleResetBands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mgr := a.manager()
	if mgr == nil {
		return mcp.NewToolResultError("equalizer is shut down"), nil
	}

	bands := mgr.SupportedBands()
	if arg := strings.TrimSpace(request.GetString("bands", "")); arg != "" {
		bands = nil
		for _, name := range strings.Split(arg, ",") {
			bands = append(bands, strings.ToUpper(strings.TrimSpace(name)))
		}
		supported := make(map[string]struct{})
		for _, name := range mgr.SupportedBands() {
			supported[name] = struct{}{}
		}
		for _, name := range bands {
			if _, ok := supported[name]; !ok {
				return mcp.NewToolResultError(fmt.Sprintf("Unsupported band: %s", name)), nil
			}
		}
	}
	sort.Strings(bands)

	logging.Debug(subsystem, "tool reset bands %v", bands)
	mgr.ResetBands(bands)
	return a.handleGetBandLevels(ctx, request)
}

// bandLevelArgument extracts a band-to-integer map argument. MCP numbers
// arrive as float64; fractional levels are rejected.
func bandLevelArgument(request mcp.CallToolRequest, key string) (map[string]int, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", key))
	}
	raw, ok := argsMap[key].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil, mcp.NewToolResultError(fmt.Sprintf("%s parameter is required and must be a non-empty object", key))
	}

	out := make(map[string]int, len(raw))
	for name, value := range raw {
		level, ok := integerValue(value)
		if !ok {
			return nil, mcp.NewToolResultError(fmt.Sprintf("Level for band %s must be an integer", name))
		}
		out[strings.ToUpper(strings.TrimSpace(name))] = level
	}
	return out, nil
}

// integerValue normalizes a JSON number. Decoded payloads carry float64,
// in-process callers may pass int.
func integerValue(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func checkSupported(mgr *manager.Manager, levels map[string]int) *mcp.CallToolResult {
	supported := make(map[string]struct{})
	for _, name := range mgr.SupportedBands() {
		supported[name] = struct{}{}
	}
	for name := range levels {
		if _, ok := supported[name]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Unsupported band: %s", name))
		}
	}
	return nil
}
