package mcp

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/strategy"
	"github.com/poliscout/poliscout/discover/validate"
)

var argValidator = validator.New()

func InitTools() []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(DiscoverPolicyURL()))
	tools = append(tools, newServerTool(DiscoverAllDocuments()))

	return tools
}

// newEngine wires a discovery engine per tool call; the rate limiter is
// shared process-wide so parallel tool calls stay polite.
var sharedLimiter = fetch.NewRateLimiter(fetch.DefaultConfig().RateInterval)

func newEngine() (*discover.Engine, error) {
	fetcher := fetch.New(fetch.DefaultConfig(), sharedLimiter)
	v := validate.New()

	return discover.NewEngine(
		discover.DefaultConfig(),
		fetcher,
		v,
		strategy.Defaults(fetcher, v)...,
	)
}

func DiscoverPolicyURL() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"discover_policy_url",
			mcp.WithDescription("Locate the most likely URL of a policy document for a domain"),
			mcp.WithString("domain", mcp.Required(), mcp.Description("Target domain name, e.g. example.com")),
			mcp.WithString("type", mcp.Description("Document type (privacy, terms, cookies, security, gdpr, ccpa, ai, acceptable_use)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Domain string `json:"domain" validate:"required"`
				Type   string `json:"type" validate:"omitempty"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := argValidator.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			docType := discover.TypePrivacy
			if args.Type != "" {
				t, ok := discover.DocumentTypeFromString(args.Type)
				if !ok {
					return mcp.NewToolResultError("Unknown document type"), nil
				}
				docType = t
			}

			engine, err := newEngine()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			candidate, found, err := engine.DiscoverType(ctx, args.Domain, docType)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if !found {
				return mcp.NewToolResultText(`{"found": false}`), nil
			}

			out, err := json.Marshal(struct {
				Found      bool   `json:"found"`
				URL        string `json:"url"`
				Source     string `json:"source"`
				Confidence int    `json:"confidence"`
			}{true, candidate.URL, candidate.Source.String(), candidate.Confidence})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(out)), nil
		}
}

func DiscoverAllDocuments() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"discover_all_documents",
			mcp.WithDescription("Locate every supported policy document type for a domain"),
			mcp.WithString("domain", mcp.Required(), mcp.Description("Target domain name, e.g. example.com")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Domain string `json:"domain" validate:"required"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := argValidator.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			engine, err := newEngine()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			docs, err := engine.DiscoverAll(ctx, args.Domain)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			out, err := json.Marshal(struct {
				Documents []discover.DiscoveredDocument `json:"documents"`
			}{docs})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(out)), nil
		}
}
