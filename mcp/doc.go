// Package mcp implements the Model Context Protocol server for poliscout.
//
// The mcp package provides:
// - MCP server implementation for external tool integration
// - discover_policy_url and discover_all_documents tool definitions
// - Argument decoding and validation for MCP clients
package mcp
