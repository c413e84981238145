package cli

import (
	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analytics tools over MCP on stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	return mcp.ServeStdio(mcp.New(st, cfg, Version, logger()))
}
