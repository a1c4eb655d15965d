package root

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/render"
)

// maxRenderWidth caps the wrap width of styled replies.
const maxRenderWidth = 100

type sendFlags struct {
	plain   bool
	noTools bool
}

func newSendCmd(root *rootFlags) *cobra.Command {
	var flags sendFlags

	cmd := &cobra.Command{
		Use:   "send <message>|-",
		Short: "Send one message and print the reply",
		Long:  `Send a single message to the current session and print the rendered reply and token usage`,
		Example: `  gemini-console send "What changed in the last commit?"
  git diff | gemini-console send -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			client, err := root.newClient(cfg)
			if err != nil {
				return err
			}

			resp, err := client.SendMessage(cmd.Context(), message, !flags.noTools)
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			plain := flags.plain || !isTerminal(out)
			printReply(out, resp, plain, min(terminalWidth(out, maxRenderWidth), maxRenderWidth), cfg.GetSettings().DarkMode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.plain, "plain", false, "Print plain text instead of styled output")
	cmd.Flags().BoolVar(&flags.noTools, "no-tools", false, "Do not let the assistant call tools for this message")

	return cmd
}

// readMessage joins args, or reads stdin when the only argument is "-".
func readMessage(stdin io.Reader, args []string) (string, error) {
	text := strings.Join(args, " ")
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading message from stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("message is empty")
	}
	return text, nil
}

func printReply(w io.Writer, resp *api.SendResponse, plain bool, width int, dark bool) {
	html := render.Placeholder
	if resp.Response != nil {
		html = render.ToSafeHTML(*resp.Response)
	}

	var blocks []string
	if plain {
		blocks = append(blocks, render.PlainText(html))
	} else {
		blocks = append(blocks, render.NewRenderer(width, dark).Render(html))
	}

	if len(resp.ToolResults) > 0 {
		tools := render.ToSafeHTML(render.ToolResults(resp.ToolResults))
		if plain {
			blocks = append(blocks, render.PlainText(tools))
		} else {
			blocks = append(blocks, render.NewRenderer(width, dark).Render(tools))
		}
	}

	fmt.Fprintln(w, strings.Join(blocks, "\n\n"))

	if resp.Tokens != nil {
		usage := fmt.Sprintf("Tokens: in %d · out %d · total %d",
			resp.Tokens.Input, resp.Tokens.Output, resp.Tokens.Input+resp.Tokens.Output)
		if plain {
			fmt.Fprintln(w, usage)
		} else {
			faintColor.Fprintln(w, usage)
		}
	}
}
