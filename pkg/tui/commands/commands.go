package commands

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/dialog"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

// item is a palette command that can also take an argument when typed as a
// slash command.
type item struct {
	dialog.Command
	withArg func(arg string) tea.Msg
}

func panel(p messages.Panel) func() tea.Cmd {
	return func() tea.Cmd {
		return core.CmdHandler(messages.OpenPanelMsg{Panel: p})
	}
}

func send(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return core.CmdHandler(msg)
	}
}

func chatCommands() []item {
	return []item{
		{Command: dialog.Command{
			ID:           "chat.clear",
			Label:        "Clear Chat",
			SlashCommand: "/clear",
			Shortcut:     "ctrl+k",
			Description:  "Clear the conversation",
			Category:     "Chat",
			Execute:      panel(messages.PanelClearChat),
		}},
		{Command: dialog.Command{
			ID:           "chat.export",
			Label:        "Export Chat",
			SlashCommand: "/export",
			Shortcut:     "ctrl+e",
			Description:  "Save the conversation to a text file",
			Category:     "Chat",
			Execute:      send(messages.ExportChatMsg{}),
		}},
		{Command: dialog.Command{
			ID:           "chat.output",
			Label:        "Full Output",
			SlashCommand: "/output",
			Shortcut:     "ctrl+r",
			Description:  "Show the full HTML of the last response",
			Category:     "Chat",
			Execute:      panel(messages.PanelFullOutput),
		}},
		{Command: dialog.Command{
			ID:           "chat.tools",
			Label:        "Toggle Tool Use",
			SlashCommand: "/usetools",
			Description:  "Let the assistant call tools when answering",
			Category:     "Chat",
			Execute:      send(messages.ToggleToolsMsg{}),
		}},
	}
}

func fileCommands() []item {
	return []item{
		{
			Command: dialog.Command{
				ID:           "files.upload",
				Label:        "Upload Files",
				SlashCommand: "/upload",
				Shortcut:     "ctrl+u",
				Description:  "Upload files by path",
				Category:     "Files",
				Execute:      panel(messages.PanelUploadPaths),
			},
			withArg: func(arg string) tea.Msg {
				return messages.UploadPathsMsg{Paths: chat.SplitPaths(arg)}
			},
		},
		{Command: dialog.Command{
			ID:           "files.quick",
			Label:        "Quick Upload",
			SlashCommand: "/quick",
			Shortcut:     "ctrl+o",
			Description:  "Pick local files to upload",
			Category:     "Files",
			Execute:      panel(messages.PanelQuickUpload),
		}},
		{
			Command: dialog.Command{
				ID:           "files.pdf",
				Label:        "Upload PDF from URL",
				SlashCommand: "/pdf",
				Description:  "Let the backend download and upload a PDF",
				Category:     "Files",
				Execute:      panel(messages.PanelUploadPDF),
			},
			withArg: func(arg string) tea.Msg {
				url, name, _ := strings.Cut(arg, " ")
				return messages.UploadPDFMsg{URL: url, DisplayName: strings.TrimSpace(name)}
			},
		},
		{Command: dialog.Command{
			ID:           "files.list",
			Label:        "Files",
			SlashCommand: "/files",
			Shortcut:     "ctrl+l",
			Description:  "List and delete uploaded files",
			Category:     "Files",
			Execute:      panel(messages.PanelFiles),
		}},
		{Command: dialog.Command{
			ID:           "files.reupload",
			Label:        "Re-upload Session Files",
			SlashCommand: "/reupload",
			Description:  "Upload expired files of the loaded session again",
			Category:     "Files",
			Execute:      panel(messages.PanelReupload),
		}},
		{Command: dialog.Command{
			ID:           "files.clear",
			Label:        "Clear Files",
			SlashCommand: "/clearfiles",
			Description:  "Delete every uploaded file",
			Category:     "Files",
			Execute:      panel(messages.PanelClearFiles),
		}},
	}
}

func sessionCommands() []item {
	return []item{
		{
			Command: dialog.Command{
				ID:           "session.save",
				Label:        "Save Session",
				SlashCommand: "/save",
				Description:  "Save the current session",
				Category:     "Sessions",
				Execute:      panel(messages.PanelSaveSession),
			},
			withArg: func(arg string) tea.Msg {
				return messages.SaveSessionMsg{Name: arg}
			},
		},
		{
			Command: dialog.Command{
				ID:           "session.load",
				Label:        "Sessions",
				SlashCommand: "/load",
				Shortcut:     "ctrl+s",
				Description:  "Load or delete a saved session",
				Category:     "Sessions",
				Execute:      panel(messages.PanelSessions),
			},
			withArg: func(arg string) tea.Msg {
				return messages.LoadSessionMsg{Name: arg}
			},
		},
	}
}

func agentCommands() []item {
	return []item{
		{
			Command: dialog.Command{
				ID:           "agent.tools",
				Label:        "Tools",
				SlashCommand: "/help",
				Shortcut:     "ctrl+t",
				Description:  "Show tool help or run a tool",
				Category:     "Agent",
				Execute:      panel(messages.PanelTools),
			},
			withArg: func(arg string) tea.Msg {
				return messages.ShowToolHelpMsg{Name: arg}
			},
		},
		{
			Command: dialog.Command{
				ID:           "agent.workflows",
				Label:        "Workflows",
				SlashCommand: "/workflow",
				Shortcut:     "ctrl+w",
				Description:  "Apply a workflow template",
				Category:     "Agent",
				Execute:      panel(messages.PanelWorkflows),
			},
			withArg: func(arg string) tea.Msg {
				name, instructions, _ := strings.Cut(arg, " ")
				return messages.ApplyWorkflowMsg{Name: name, Instructions: strings.TrimSpace(instructions)}
			},
		},
		{
			Command: dialog.Command{
				ID:           "agent.memory",
				Label:        "Search Memory",
				SlashCommand: "/memory",
				Shortcut:     "ctrl+g",
				Description:  "Search the assistant's memory",
				Category:     "Agent",
				Execute:      panel(messages.PanelMemory),
			},
			withArg: func(arg string) tea.Msg {
				return messages.SearchMemoryMsg{Query: arg}
			},
		},
		{Command: dialog.Command{
			ID:           "agent.context",
			Label:        "Project Context",
			SlashCommand: "/context",
			Shortcut:     "ctrl+;",
			Description:  "Show the project analysis",
			Category:     "Agent",
			Execute:      panel(messages.PanelContext),
		}},
		{
			Command: dialog.Command{
				ID:           "agent.project",
				Label:        "Set Project Path",
				SlashCommand: "/project",
				Description:  "Point the assistant at a project directory",
				Category:     "Agent",
				Execute:      panel(messages.PanelProjectPath),
			},
			withArg: func(arg string) tea.Msg {
				return messages.SetProjectPathMsg{Path: arg}
			},
		},
		{Command: dialog.Command{
			ID:           "agent.autoapprove",
			Label:        "Toggle Auto-approve",
			SlashCommand: "/autoapprove",
			Shortcut:     "shift+tab",
			Description:  "Run tools without asking",
			Category:     "Agent",
			Execute:      send(messages.ToggleAutoApproveMsg{}),
		}},
		{Command: dialog.Command{
			ID:           "agent.refresh",
			Label:        "Refresh Agent",
			SlashCommand: "/refresh",
			Description:  "Reload tools and workflows",
			Category:     "Agent",
			Execute:      send(messages.RefreshAgentUIMsg{}),
		}},
	}
}

func viewCommands() []item {
	return []item{
		{Command: dialog.Command{
			ID:           "view.settings",
			Label:        "Settings",
			SlashCommand: "/settings",
			Description:  "Model settings and dark mode",
			Category:     "View",
			Execute:      panel(messages.PanelSettings),
		}},
		{Command: dialog.Command{
			ID:           "view.theme",
			Label:        "Toggle Dark Mode",
			SlashCommand: "/theme",
			Description:  "Switch between dark and light colors",
			Category:     "View",
			Execute:      send(messages.ToggleThemeMsg{}),
		}},
		{Command: dialog.Command{
			ID:           "view.shutdown",
			Label:        "Shut Down Backend",
			SlashCommand: "/shutdown",
			Description:  "Ask the backend server to exit",
			Category:     "View",
			Execute:      send(messages.ShutdownBackendMsg{}),
		}},
		{Command: dialog.Command{
			ID:           "view.exit",
			Label:        "Exit",
			SlashCommand: "/exit",
			Shortcut:     "ctrl+c",
			Description:  "Quit the application",
			Category:     "View",
			Execute:      func() tea.Cmd { return tea.Quit },
		}},
	}
}

func allCommands() [][]item {
	return [][]item{chatCommands(), fileCommands(), sessionCommands(), agentCommands(), viewCommands()}
}

// BuildCommandCategories builds the list of command categories for the command palette
func BuildCommandCategories() []dialog.CommandCategory {
	var categories []dialog.CommandCategory
	for _, items := range allCommands() {
		category := dialog.CommandCategory{Name: items[0].Category}
		for _, it := range items {
			category.Commands = append(category.Commands, it.Command)
		}
		categories = append(categories, category)
	}
	return categories
}

// ParseSlashCommand turns editor input starting with "/" into a command. It
// returns nil for anything else, including unknown commands, so the text is
// sent to the assistant as-is.
func ParseSlashCommand(input string) tea.Cmd {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	if name == "/quit" {
		name = "/exit"
	}

	for _, items := range allCommands() {
		for _, it := range items {
			if it.SlashCommand != name {
				continue
			}
			if arg != "" && it.withArg != nil {
				return core.CmdHandler(it.withArg(arg))
			}
			return it.Execute()
		}
	}
	return nil
}
