package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/routine/internal/ids"
	"github.com/amonks/routine/internal/ui"
	"github.com/amonks/routine/preset"
	"github.com/amonks/routine/task"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage reusable task bundles",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetListJSON bool

var presetShowCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Show the templates of a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetShow,
}

var presetShowJSON bool

var presetApplyCmd = &cobra.Command{
	Use:   "apply <id-or-name>",
	Short: "Create the tasks of a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetApply,
}

var presetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create or replace a preset",
	Long: `Create or replace a preset.

Each --task is "text" optionally followed by "|key=value" options:

  due=3h        due offset from when the preset is applied (h, m, or d)
  priority=high priority (high, medium, low)
  items=a,b     checklist items

Use --file to import a preset written in TOML or YAML instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresetCreate,
}

var (
	presetCreateID     string
	presetCreateTasks  []string
	presetCreateFile   string
	presetCreateFormat string
)

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetDelete,
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd, presetShowCmd, presetApplyCmd, presetCreateCmd, presetDeleteCmd)

	presetListCmd.Flags().BoolVar(&presetListJSON, "json", false, "Output as JSON")
	presetShowCmd.Flags().BoolVar(&presetShowJSON, "json", false, "Output as JSON")

	presetCreateCmd.Flags().StringVar(&presetCreateID, "id", "", "Preset id (defaults to a slug of the name)")
	presetCreateCmd.Flags().StringArrayVarP(&presetCreateTasks, "task", "t", nil, "Task template (repeatable)")
	presetCreateCmd.Flags().StringVarP(&presetCreateFile, "file", "f", "", "Import a preset file")
	presetCreateCmd.Flags().StringVar(&presetCreateFormat, "format", string(preset.FormatTOML), "Storage format (toml, yaml)")
	presetCreateCmd.MarkFlagsMutuallyExclusive("task", "file")
}

// withCatalog opens only the preset catalog.
func withCatalog(fn func(a *app, catalog *preset.Catalog) error) error {
	a, err := openProvider()
	if err != nil {
		return err
	}
	defer a.Close()
	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	return fn(a, catalog)
}

func runPresetList(cmd *cobra.Command, args []string) error {
	return withCatalog(func(a *app, catalog *preset.Catalog) error {
		presets, err := catalog.List()
		if err != nil {
			return err
		}
		if presetListJSON {
			if presets == nil {
				presets = []preset.Preset{}
			}
			return encodeJSONToStdout(presets)
		}
		if len(presets) == 0 {
			fmt.Println("No presets.")
			return nil
		}
		builder := ui.NewTableBuilder([]string{"ID", "NAME", "TASKS"}, len(presets))
		for _, p := range presets {
			builder.AddRow(p.ID, ui.TruncateTableCell(p.Name), strconv.Itoa(len(p.Tasks)))
		}
		fmt.Print(builder.String())
		return nil
	})
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	return withCatalog(func(a *app, catalog *preset.Catalog) error {
		p, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		if presetShowJSON {
			return encodeJSONToStdout(p)
		}

		fmt.Printf("ID:    %s\n", p.ID)
		fmt.Printf("Name:  %s\n", p.Name)
		fmt.Println()
		builder := ui.NewTableBuilder([]string{"TEXT", "PRIORITY", "DUE", "CHECKLIST"}, len(p.Tasks))
		for _, tmpl := range p.Tasks {
			priority := tmpl.Priority
			if priority == "" {
				priority = task.PriorityMedium
			}
			due := "-"
			if offset, ok := tmpl.DueOffset(); ok {
				due = "+" + ui.FormatDurationShort(offset)
			}
			checklist := "-"
			if len(tmpl.Checklist) > 0 {
				checklist = strings.Join(tmpl.Checklist, ", ")
			}
			builder.AddRow(ui.TruncateTableCell(tmpl.Text), string(priority), due, ui.TruncateTableCell(checklist))
		}
		fmt.Print(builder.String())
		return nil
	})
}

func runPresetApply(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		catalog, err := a.catalog()
		if err != nil {
			return err
		}
		p, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		created := preset.Apply(a.store, p, a.now())
		highlight := idHighlighter(a.store.IDIndex())
		for _, item := range created {
			printTaskLine("Created", item, highlight)
		}
		fmt.Printf("Applied preset %s: %d tasks\n", p.Name, len(created))
		return nil
	})
}

var errPresetNameRequired = errors.New("preset name is required")

func runPresetCreate(cmd *cobra.Command, args []string) error {
	format, err := preset.ParseFormat(presetCreateFormat)
	if err != nil {
		return err
	}

	var p preset.Preset
	if presetCreateFile != "" {
		p, err = readPresetFile(presetCreateFile)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			p.Name = args[0]
		}
	} else {
		if len(args) == 0 {
			return errPresetNameRequired
		}
		p.Name = args[0]
		gen := ids.NewSequence("")
		for _, raw := range presetCreateTasks {
			tmpl, err := parseTemplate(raw)
			if err != nil {
				return err
			}
			tmpl.ID = gen.NewID()
			p.Tasks = append(p.Tasks, tmpl)
		}
	}
	if presetCreateID != "" {
		p.ID = presetCreateID
	}
	if p.ID == "" {
		p.ID = preset.Slug(p.Name)
	}

	return withCatalog(func(a *app, catalog *preset.Catalog) error {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = a.now().UTC()
		}
		path, err := catalog.Save(p, format)
		if err != nil {
			return err
		}
		a.logger.Printf("wrote %s", path)
		fmt.Printf("Saved preset %s: %s (%d tasks)\n", p.ID, p.Name, len(p.Tasks))
		return nil
	})
}

func readPresetFile(path string) (preset.Preset, error) {
	format, err := preset.FormatOf(path)
	if err != nil {
		return preset.Preset{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return preset.Preset{}, fmt.Errorf("read preset file: %w", err)
	}
	return preset.Unmarshal(data, format)
}

// parseTemplate parses "text|due=3h|priority=high|items=a,b".
func parseTemplate(raw string) (preset.Template, error) {
	parts := strings.Split(raw, "|")
	tmpl := preset.Template{Text: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return preset.Template{}, fmt.Errorf("invalid task option %q: want key=value", part)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "due":
			offset, ok := parseOffset(value)
			if !ok {
				return preset.Template{}, fmt.Errorf("invalid due offset %q", value)
			}
			tmpl.DueHoursOffset = preset.HoursPtr(offset.Hours())
		case "priority":
			priority, err := task.ParsePriority(value)
			if err != nil {
				return preset.Template{}, err
			}
			tmpl.Priority = priority
		case "items":
			for _, item := range strings.Split(value, ",") {
				if item = strings.TrimSpace(item); item != "" {
					tmpl.Checklist = append(tmpl.Checklist, item)
				}
			}
		default:
			return preset.Template{}, fmt.Errorf("unknown task option %q", key)
		}
	}
	return tmpl, nil
}

func runPresetDelete(cmd *cobra.Command, args []string) error {
	return withCatalog(func(a *app, catalog *preset.Catalog) error {
		deleted, err := catalog.Delete(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted preset %s: %s\n", deleted.ID, deleted.Name)
		return nil
	})
}
