package main

import (
	"github.com/jongio/toastnotifier/mcptool"
	"github.com/jongio/toastnotifier/version"
	"github.com/spf13/cobra"
)

const (
	mcpCallsPerSecond = 2
	mcpBurst          = 5
)

func newMCPCommand(a *app, info *version.Info) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the notifier as MCP tools over stdio",
		Long: `Serve the notifier as MCP tools over stdio

Exposes show_notification, render_notification and list_templates to MCP
clients. Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			log.Info("starting MCP server", "version", info.Version)
			return newMCPServer(a, info).ServeStdio()
		},
	}
}

func newMCPServer(a *app, info *version.Info) *mcptool.Server {
	cfg := a.notifyConfig()
	return mcptool.New(info, mcptool.Options{
		Delivery:       a.newDelivery(cfg),
		Config:         cfg,
		DefaultTimeout: a.opts.Timeout,
		CallsPerSecond: mcpCallsPerSecond,
		Burst:          mcpBurst,
	})
}
