package capability

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eqbridge/internal/manager"
)

type testConfiguration struct {
	min, max, def int
}

func (c testConfiguration) MinBandLevel() int     { return c.min }
func (c testConfiguration) MaxBandLevel() int     { return c.max }
func (c testConfiguration) DefaultBandLevel() int { return c.def }

type testStorage struct {
	state manager.State
}

func (s *testStorage) SaveState(state manager.State) { s.state = state }
func (s *testStorage) LoadState() (manager.State, error) {
	return s.state, nil
}
func (s *testStorage) Clear() {}

func newTestAgent(t *testing.T) (*Agent, *manager.Manager) {
	t.Helper()

	mgr, err := manager.New(
		testConfiguration{min: -6, max: 6, def: 0},
		&testStorage{state: manager.State{
			Levels: map[string]int{"BASS": 0, "MID": 0, "TREBLE": 0},
			Mode:   manager.ModeNone,
		}},
	)
	require.NoError(t, err)

	agent, err := NewAgent(mgr)
	require.NoError(t, err)
	return agent, mgr
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultState(t *testing.T, result *mcp.CallToolResult) stateResult {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")

	var state stateResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &state))
	return state
}

func TestNewAgent_NilManager(t *testing.T) {
	agent, err := NewAgent(nil)
	assert.Nil(t, agent)
	assert.ErrorIs(t, err, ErrNilManager)
}

func TestTools_Names(t *testing.T) {
	agent, _ := newTestAgent(t)

	names := map[string]bool{}
	for _, st := range agent.Tools() {
		names[st.Tool.Name] = true
	}

	assert.True(t, names["equalizer_get_band_levels"])
	assert.True(t, names["equalizer_set_band_levels"])
	assert.True(t, names["equalizer_adjust_band_levels"])
	assert.True(t, names["equalizer_reset_bands"])
}

func TestGetBandLevels(t *testing.T) {
	agent, _ := newTestAgent(t)

	result, err := agent.handleGetBandLevels(context.Background(),
		toolRequest("equalizer_get_band_levels", map[string]interface{}{}))
	require.NoError(t, err)

	state := resultState(t, result)
	assert.Equal(t, map[string]int{"BASS": 0, "MID": 0, "TREBLE": 0}, state.Levels)
	assert.Equal(t, []string{"BASS", "MID", "TREBLE"}, state.SupportedBands)
	assert.Equal(t, -6, state.MinLevel)
	assert.Equal(t, 6, state.MaxLevel)
}

func TestSetBandLevels_ClampsOutOfRange(t *testing.T) {
	agent, mgr := newTestAgent(t)

	result, err := agent.handleSetBandLevels(context.Background(),
		toolRequest("equalizer_set_band_levels", map[string]interface{}{
			"levels": map[string]interface{}{"BASS": 10, "MID": -2},
		}))
	require.NoError(t, err)

	state := resultState(t, result)
	assert.Equal(t, 6, state.Levels["BASS"])
	assert.Equal(t, -2, state.Levels["MID"])
	assert.Equal(t, 6, mgr.BandLevels()["BASS"])
}

func TestSetBandLevels_MissingArgument(t *testing.T) {
	agent, _ := newTestAgent(t)

	result, err := agent.handleSetBandLevels(context.Background(),
		toolRequest("equalizer_set_band_levels", map[string]interface{}{}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestSetBandLevels_UnsupportedBand(t *testing.T) {
	agent, mgr := newTestAgent(t)

	result, err := agent.handleSetBandLevels(context.Background(),
		toolRequest("equalizer_set_band_levels", map[string]interface{}{
			"levels": map[string]interface{}{"SUBWOOFER": 1},
		}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Equal(t, map[string]int{"BASS": 0, "MID": 0, "TREBLE": 0}, mgr.BandLevels())
}

func TestSetBandLevels_NonIntegerLevel(t *testing.T) {
	agent, _ := newTestAgent(t)

	result, err := agent.handleSetBandLevels(context.Background(),
		toolRequest("equalizer_set_band_levels", map[string]interface{}{
			"levels": map[string]interface{}{"BASS": 1.5},
		}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestAdjustBandLevels_ManagerClamps(t *testing.T) {
	agent, mgr := newTestAgent(t)
	mgr.SetBandLevels(map[string]int{"BASS": 2})

	result, err := agent.handleAdjustBandLevels(context.Background(),
		toolRequest("equalizer_adjust_band_levels", map[string]interface{}{
			"deltas": map[string]interface{}{"BASS": 10},
		}))
	require.NoError(t, err)

	state := resultState(t, result)
	assert.Equal(t, 6, state.Levels["BASS"])
}

func TestResetBands_All(t *testing.T) {
	agent, mgr := newTestAgent(t)
	mgr.SetBandLevels(map[string]int{"BASS": 3, "TREBLE": -4})

	result, err := agent.handleResetBands(context.Background(),
		toolRequest("equalizer_reset_bands", map[string]interface{}{}))
	require.NoError(t, err)

	state := resultState(t, result)
	assert.Equal(t, map[string]int{"BASS": 0, "MID": 0, "TREBLE": 0}, state.Levels)
}

func TestResetBands_Subset(t *testing.T) {
	agent, _ := newTestAgent(t)

	_, err := agent.handleSetBandLevels(context.Background(),
		toolRequest("equalizer_set_band_levels", map[string]interface{}{
			"levels": map[string]interface{}{"BASS": 3, "TREBLE": -4},
		}))
	require.NoError(t, err)

	result, err := agent.handleResetBands(context.Background(),
		toolRequest("equalizer_reset_bands", map[string]interface{}{
			"bands": " treble ",
		}))
	require.NoError(t, err)

	state := resultState(t, result)
	assert.Equal(t, 3, state.Levels["BASS"])
	assert.Equal(t, 0, state.Levels["TREBLE"])
}

func TestResetBands_Unknown(t *testing.T) {
	agent, _ := newTestAgent(t)

	result, err := agent.handleResetBands(context.Background(),
		toolRequest("equalizer_reset_bands", map[string]interface{}{
			"bands": "BASS,SUBWOOFER",
		}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestShutdown_DisablesHandlers(t *testing.T) {
	agent, _ := newTestAgent(t)

	agent.Shutdown()
	agent.Shutdown()

	result, err := agent.handleGetBandLevels(context.Background(),
		toolRequest("equalizer_get_band_levels", map[string]interface{}{}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
