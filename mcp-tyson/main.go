package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	tyson "github.com/rphilander/tyson/core"
)

var (
	conn   net.Conn
	connMu sync.Mutex
)

// send forwards a request to the tyson core and waits for its response.
func send(req map[string]any) (map[string]any, error) {
	req["id"] = tyson.NextID()
	connMu.Lock()
	defer connMu.Unlock()
	if err := tyson.WriteMsg(conn, req); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	resp, err := tyson.ReadMsg(conn)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return resp, nil
}

// formatResult turns a core response into an MCP tool result. Error values
// from eval are reported as tool errors carrying their rendering.
func formatResult(resp map[string]any) (*mcp.CallToolResult, error) {
	ok, _ := resp["ok"].(bool)
	if !ok {
		errMsg, _ := resp["error"].(string)
		if v, isMap := resp["value"].(map[string]any); isMap {
			if rendered, _ := v["result"].(string); rendered != "" {
				errMsg = rendered
			}
		}
		if errMsg == "" {
			errMsg = "unknown error"
		}
		return mcp.NewToolResultError(errMsg), nil
	}
	out, err := json.MarshalIndent(resp["value"], "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func forward(req map[string]any) (*mcp.CallToolResult, error) {
	resp, err := send(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return formatResult(resp)
}

func handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return forward(map[string]any{"op": "eval", "expr": expr})
}

func handleEnv(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return forward(map[string]any{"op": "env"})
}

func handleParse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return forward(map[string]any{"op": "parse", "expr": expr})
}

func handleTraces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := map[string]any{"op": "traces"}
	if n := request.GetFloat("n", -1); n >= 0 {
		req["n"] = n
	}
	return forward(req)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := tyson.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	conn, err = net.Dial("unix", cfg.Socket)
	if err != nil {
		log.Fatalf("connect to %s: %v", cfg.Socket, err)
	}
	defer conn.Close()
	log.Printf("connected to tyson core: %s", cfg.Socket)

	s := server.NewMCPServer(
		"tyson",
		tyson.Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("tyson_eval",
			mcp.WithDescription("Evaluate a tyson expression in the shared environment. Returns the rendered result and any names bound by def."),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Expression to evaluate, e.g. (+ 1 2) or def {x} 10"),
			),
		),
		handleEval,
	)

	s.AddTool(
		mcp.NewTool("tyson_env",
			mcp.WithDescription("List every binding in the global environment, builtins first."),
		),
		handleEnv,
	)

	s.AddTool(
		mcp.NewTool("tyson_parse",
			mcp.WithDescription("Show the parse tree of an expression without evaluating it."),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Expression to parse"),
			),
		),
		handleParse,
	)

	s.AddTool(
		mcp.NewTool("tyson_traces",
			mcp.WithDescription("Return recent evaluation traces, oldest first."),
			mcp.WithNumber("n",
				mcp.Description("Number of traces to return; all when omitted"),
			),
		),
		handleTraces,
	)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
