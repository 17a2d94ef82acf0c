package mcp

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/ka2n/yure/api"
	"github.com/ka2n/yure/display"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

func InitTools(gen ReportGenerator, query api.Query) []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(FetchReport(gen)))
	tools = append(tools, newServerTool(QueryURL(query)))

	return tools
}

// FetchReport fetches the data and returns the report text. Fetch failures
// and empty results come back as ordinary text, like the terminal shows them.
func FetchReport(gen ReportGenerator) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"fetch_earthquake_report",
			mcp.WithDescription("Fetch the 2022 magnitude 2+ earthquake report for the El Salvador region from USGS"),
			mcp.WithString("style", mcp.Description("Output style: raw keeps <b> markup, plain strips it (default plain)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Style string `mapstructure:"style" validate:"omitempty,oneof=raw plain"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			style := display.StylePlain
			if args.Style != "" {
				style = display.Style(args.Style)
			}

			result := gen.Generate(ctx)
			text, err := display.Stylizer{}.Apply(string(result.Text), style)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(text), nil
		}
}

// QueryURL returns the request URL and its ordered parameters without fetching
func QueryURL(query api.Query) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"earthquake_query_url",
			mcp.WithDescription("Return the USGS event query URL and parameters used for the earthquake report"),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type QueryInfo struct {
				URL    string      `json:"url"`
				Params []api.Param `json:"params"`
			}

			b, err := json.Marshal(QueryInfo{
				URL:    query.URL(),
				Params: query.Params(),
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}
