package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/output"
)

var rulesFlagYAML bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List framework and tool detection rules",
	Long: `Rules prints the ordered detection tables. Frameworks are scored by
how many of their dependency names appear and the first rule wins a tie;
tools are listed whenever any dependency name appears.`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesFlagYAML, "yaml", false, "Output as YAML")
	rootCmd.AddCommand(rulesCmd)
}

// rulesOutput is the serializable form of the rule tables.
type rulesOutput struct {
	Frameworks []analyzer.Rule `json:"frameworks" yaml:"frameworks"`
	Tools      []analyzer.Rule `json:"tools" yaml:"tools"`
}

func runRules(cmd *cobra.Command, args []string) error {
	out := rulesOutput{
		Frameworks: analyzer.FrameworkRules(),
		Tools:      analyzer.ToolRules(),
	}
	w := cmd.OutOrStdout()

	switch {
	case flagJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case rulesFlagYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintln(w, output.Section(fmt.Sprintf("Frameworks (%d)", len(out.Frameworks))))
	fmt.Fprintln(w)
	fmt.Fprint(w, rulesTable(out.Frameworks))

	fmt.Fprintln(w, output.Section(fmt.Sprintf("Tools (%d)", len(out.Tools))))
	fmt.Fprintln(w)
	fmt.Fprint(w, rulesTable(out.Tools))
	return nil
}

func rulesTable(rules []analyzer.Rule) string {
	tbl := output.NewTable("#", "Name", "Dependencies")
	for i, r := range rules {
		tbl.AddRow(fmt.Sprintf("%d", i+1), r.Name, output.StyleMuted.Render(strings.Join(r.Aliases, ", ")))
	}
	return tbl.Render()
}
