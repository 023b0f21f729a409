// Command prolific-mcp serves the Prolific tool catalog over MCP stdio,
// and optionally drives it with a Gemini chat loop.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"

	"github.com/prolific-tools/prolific-mcp/config"
	"github.com/prolific-tools/prolific-mcp/gemini"
	"github.com/prolific-tools/prolific-mcp/mcpserver"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/prolific-tools/prolific-mcp/tools"
	"github.com/prolific-tools/prolific-mcp/tools/participants"
	"github.com/prolific-tools/prolific-mcp/tools/studies"
	"github.com/prolific-tools/prolific-mcp/tools/submissions"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "prolific-mcp",
		Short:         "MCP server exposing the Prolific API as agent tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout belongs to the MCP protocol
			xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
			if debug {
				xlog.SetGlobalLogLevel(xlog.DEBUG)
			} else {
				xlog.SetGlobalLogLevel(xlog.INFO)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(serveCmd(), chatCmd(), toolsCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	list, err := buildTools(prolific.NewClient(cfg))
	if err != nil {
		return err
	}
	srv, err := mcpserver.New("prolific-mcp", version, list...)
	if err != nil {
		return err
	}
	return srv.ServeStdio()
}

func chatCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Chat with Gemini using the Prolific tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ValidateGemini(); err != nil {
				return err
			}

			ctx := cmd.Context()
			chat, err := gemini.New(ctx, cfg.GeminiAPIKey)
			if err != nil {
				return err
			}

			exe, err := os.Executable()
			if err != nil {
				return err
			}
			if err := chat.Connect(ctx, exe, os.Environ(), "serve"); err != nil {
				return err
			}
			defer chat.Close()

			out, err := chat.Chat(ctx, strings.Join(args, " "), model)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", gemini.DefaultModel, "Gemini model to use")
	return cmd
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			// listing the catalog needs no credentials
			list, err := buildTools(prolific.NewClient(config.Load()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tools.GetDescriptions(list...))
			return nil
		},
	}
}

func buildTools(client *prolific.Client) ([]tools.ITool, error) {
	type builder func(*prolific.Client) (tools.ITool, error)

	builders := []builder{
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewCreateTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewGetTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewUpdateTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewLaunchTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewStatusTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewListTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewDeleteTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return studies.NewTestLaunchTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return submissions.NewResultsTool(c) },
		func(c *prolific.Client) (tools.ITool, error) { return participants.NewCreateTestParticipantTool(c) },
	}

	list := make([]tools.ITool, 0, len(builders))
	for _, build := range builders {
		t, err := build(client)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, nil
}
