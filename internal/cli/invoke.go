package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/models"
	"github.com/assistkit/gh-skill/internal/ui"
)

func newInvokeCmd(opts *options) *cobra.Command {
	var (
		params  []string
		rawJSON string
		yes     bool
		table   bool
	)

	cmd := &cobra.Command{
		Use:   "invoke <action>",
		Short: "Invoke one action and print its result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			raw, err := buildParams(params, rawJSON)
			if err != nil {
				return err
			}

			registry := newRegistry(cfg)
			def, ok := registry.Lookup(name)
			if !ok {
				return &action.UnknownActionError{Name: name}
			}

			if def.Kind == action.KindWrite && !yes {
				ok, err := opts.prompter.ConfirmAction(fmt.Sprintf("%q modifies GitHub state", name))
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Cancelled.")
					return nil
				}
			}

			logger.Debug("invoking action", "action", name)
			result, err := registry.Invoke(cmd.Context(), name, cfg.Credentials, raw)
			if err != nil {
				return err
			}

			if table {
				if rendered, ok := renderTable(result); ok {
					cmd.Print(rendered)
					return nil
				}
				logger.Debug("no table rendering for this result, falling back to JSON")
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "action parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&rawJSON, "params-json", "", "action parameters as a raw JSON object")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt for write actions")
	cmd.Flags().BoolVar(&table, "table", false, "render list results as a table instead of JSON")
	return cmd
}

// renderTable maps list-shaped results to their table renderers. Results
// without a tabular shape report false and are printed as JSON.
func renderTable(result any) (string, bool) {
	switch r := result.(type) {
	case *models.ListReposResult:
		return ui.RepoTable(r.Repos), true
	case *models.SearchReposResult:
		return ui.RepoTable(r.Repos), true
	case *models.CheckCIResult:
		return ui.RunTable(r.Runs), true
	case *models.RecentActivityResult:
		return ui.CommitTable(r.Commits), true
	default:
		return "", false
	}
}

// buildParams turns repeated key=value flags into a JSON parameter object.
// Values that parse as JSON keep their type, so limit=5 stays a number and
// private=true a boolean; everything else is passed as a string. A raw JSON
// object replaces key=value flags entirely.
func buildParams(pairs []string, rawJSON string) (json.RawMessage, error) {
	if rawJSON != "" {
		if len(pairs) > 0 {
			return nil, fmt.Errorf("--params-json and --param are mutually exclusive")
		}
		var probe map[string]any
		if err := json.Unmarshal([]byte(rawJSON), &probe); err != nil {
			return nil, fmt.Errorf("failed to parse --params-json: %w", err)
		}
		return json.RawMessage(rawJSON), nil
	}

	if len(pairs) == 0 {
		return nil, nil
	}

	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			values[key] = parsed
		} else {
			values[key] = value
		}
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	return raw, nil
}
