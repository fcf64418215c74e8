// Package capability exposes equalizer control as MCP tools.
//
// Agent translates tool calls into manager operations: absolute sets are
// range-clamped before submission because the manager stores levels
// verbatim, while adjustments pass through untouched because the manager
// clamps relative changes itself. Registry hosts the MCP server (SSE or
// stdio) that agents register into.
package capability
