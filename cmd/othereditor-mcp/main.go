package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "othereditor/internal/adapters/mcp"
	"othereditor/internal/adapters/notify"
	"othereditor/internal/bootstrap"
	"othereditor/internal/config"
)

func main() {
	v := config.New()
	vaultFlag := flag.String("vault", "", "path to the vault (default $OTHEREDITOR_VAULT or "+config.DefaultVaultPath+")")
	flag.Parse()
	if *vaultFlag != "" {
		v.Set(config.KeyVault, *vaultFlag)
	}

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "othereditor-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr
	notices := notify.NewCollector()
	rt, err := bootstrap.Start(context.Background(), cfg, notices, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "othereditor-mcp: %v\n", err)
		os.Exit(1)
	}

	mcpServer := server.NewMCPServer(
		"othereditor-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.Register(mcpServer, rt.Plugin, notices)

	err = server.ServeStdio(mcpServer)
	if closeErr := rt.Close(); closeErr != nil {
		rt.Logger.WithError(closeErr).Warn("failed to close")
	}
	if err != nil {
		rt.Logger.WithError(err).Error("othereditor-mcp stopped")
		os.Exit(1)
	}
}
