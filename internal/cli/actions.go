package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/ui"
)

func newActionsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the available actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			defs := newRegistry(cfg).Definitions()
			if asJSON {
				out, err := json.MarshalIndent(defs, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode manifest: %w", err)
				}
				cmd.Println(string(out))
				return nil
			}

			cmd.Print(manifestTable(defs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the manifest as JSON")
	return cmd
}

// manifestTable renders the action manifest for humans, one row per action
// with its parameter names inline.
func manifestTable(defs []action.Definition) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		ui.PadRight("NAME", 22), ui.PadRight("KIND", 6), "PARAMS"))
	for _, def := range defs {
		names := make([]string, len(def.Params))
		for i, p := range def.Params {
			name := p.Name
			if p.Required {
				name += "*"
			}
			names[i] = name
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			ui.PadRight(def.Name, 22),
			ui.PadRight(string(def.Kind), 6),
			strings.Join(names, ", "),
		))
	}
	return b.String()
}
