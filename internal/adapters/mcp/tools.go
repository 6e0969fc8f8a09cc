package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"othereditor/internal/adapters/notify"
	"othereditor/internal/application"
	"othereditor/internal/application/commands"
	"othereditor/internal/application/plugin"
	"othereditor/internal/domain"
)

// Register adds the editor tools to the MCP server. Notices raised while a
// tool runs are drained from notices and appended to its result.
func Register(s *server.MCPServer, p *plugin.Plugin, notices *notify.Collector) {
	s.AddTool(listEditorsTool(), listEditorsHandler(p))
	s.AddTool(openTool(), openHandler(p, notices))
	s.AddTool(openFilesTool(), openFilesHandler(p, notices))
	s.AddTool(setEditorPathTool(), setEditorPathHandler(p))
	s.AddTool(recentLaunchesTool(), recentLaunchesHandler(p))
}

func editorNames() string {
	names := make([]string, len(domain.Editors))
	for i, id := range domain.Editors {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}

// --- list_editors ---

func listEditorsTool() mcp.Tool {
	return mcp.NewTool("list_editors",
		mcp.WithDescription("List the supported editors, their configured binary paths and the command each one would run on this platform."),
	)
}

func listEditorsHandler(p *plugin.Plugin) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		statuses, err := commands.NewListEditorsCommand(p.Settings(), p.Platform()).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Platform: %s\n", p.Platform())
		for _, st := range statuses {
			fmt.Fprintf(&sb, "%s (%s)  %s=%q", st.Editor, st.Name, st.SettingKey, st.Path)
			if st.Problem != "" {
				fmt.Fprintf(&sb, "  unavailable: %s", st.Problem)
			} else {
				fmt.Fprintf(&sb, "  runs: %s", st.Command)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- open_in_editor ---

func openTool() mcp.Tool {
	return mcp.NewTool("open_in_editor",
		mcp.WithDescription("Open a vault file in an external editor. Without a file, opens the vault's active file."),
		mcp.WithString("editor",
			mcp.Description("Editor to use: "+editorNames()),
			mcp.Required(),
		),
		mcp.WithString("file",
			mcp.Description("Vault-relative path of the file to open. Omit to use the active file."),
		),
		mcp.WithBoolean("wait",
			mcp.Description("Wait for the editor process to exit and report its outcome"),
		),
	)
}

func openHandler(p *plugin.Plugin, notices *notify.Collector) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := application.ValidateEditor("editorID", req.GetString("editor", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := p.Open(ctx, id, req.GetString("file", ""))
		if err != nil {
			return toolError(withNotices(err, notices))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", result.Message)
		if req.GetBool("wait", false) {
			outcome, err := waitOutcome(ctx, result)
			if err != nil {
				return toolError(err)
			}
			if !outcome.OK() {
				return toolError(withNotices(outcome.Err, notices))
			}
			fmt.Fprintf(&sb, "Editor %s\n", outcome)
		}
		writeNotices(&sb, notices)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func waitOutcome(ctx context.Context, result *commands.OpenResult) (domain.LaunchOutcome, error) {
	select {
	case outcome := <-result.Done():
		return outcome, nil
	case <-ctx.Done():
		return domain.LaunchOutcome{}, ctx.Err()
	}
}

// --- open_files ---

func openFilesTool() mcp.Tool {
	return mcp.NewTool("open_files",
		mcp.WithDescription("Open several vault files, one editor process per file. Defaults to the context menu editor (VS Code)."),
		mcp.WithArray("files",
			mcp.Description("Vault-relative paths of the files to open"),
			mcp.WithStringItems(),
			mcp.Required(),
		),
		mcp.WithString("editor",
			mcp.Description("Editor to use: "+editorNames()),
		),
	)
}

func openFilesHandler(p *plugin.Plugin, notices *notify.Collector) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files := req.GetStringSlice("files", nil)
		if len(files) == 0 {
			return toolError(fmt.Errorf("files is required"))
		}

		id := plugin.ContextMenuEditor
		if name := req.GetString("editor", ""); name != "" {
			parsed, err := application.ValidateEditor("editorID", name)
			if err != nil {
				return toolError(err)
			}
			id = parsed
		}

		var sb strings.Builder
		failed := 0
		for _, r := range p.OpenAll(ctx, id, files) {
			if r.Err != nil {
				failed++
				fmt.Fprintf(&sb, "%s: %v\n", r.FilePath, r.Err)
				continue
			}
			fmt.Fprintf(&sb, "%s: %s\n", r.FilePath, r.Result.Message)
		}
		writeNotices(&sb, notices)

		if failed == len(files) {
			return mcp.NewToolResultError(sb.String()), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- set_editor_path ---

func setEditorPathTool() mcp.Tool {
	return mcp.NewTool("set_editor_path",
		mcp.WithDescription("Save the absolute binary path of an editor. Required on macOS. An empty path clears the setting."),
		mcp.WithString("editor",
			mcp.Description("Editor to configure: "+editorNames()),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Absolute path of the editor binary, e.g. /usr/local/bin/code"),
		),
	)
}

func setEditorPathHandler(p *plugin.Plugin) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetEditorPathCommand(p.Settings(), req.GetString("editor", ""), req.GetString("path", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- recent_launches ---

func recentLaunchesTool() mcp.Tool {
	return mcp.NewTool("recent_launches",
		mcp.WithDescription("List the most recent editor launches with their outcome."),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of launches to return (default %d)", commands.DefaultHistoryLimit)),
		),
	)
}

func recentLaunchesHandler(p *plugin.Plugin) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := commands.NewRecentLaunchesCommand(p.History(), req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("No launches recorded."), nil
		}

		var sb strings.Builder
		for _, rec := range records {
			sb.WriteString(rec.Summary())
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func withNotices(err error, notices *notify.Collector) error {
	var msgs []string
	for _, n := range notices.Drain() {
		msgs = append(msgs, n.Message)
	}
	if len(msgs) == 0 {
		return err
	}
	return errors.Join(err, errors.New(strings.Join(msgs, "\n")))
}

func writeNotices(sb *strings.Builder, notices *notify.Collector) {
	for _, n := range notices.Drain() {
		fmt.Fprintf(sb, "Notice: %s\n", n.Message)
	}
}
