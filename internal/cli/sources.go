package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/reputation"
	"gopkg.in/yaml.v3"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the source reputation table",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active reputation tiers and their domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := reputation.LoadTable(sourcesPath)
		if err != nil {
			return err
		}

		for _, tier := range reputation.TierPriority {
			entry, ok := table.Tiers[tier]
			if !ok {
				continue
			}
			domains := append([]string(nil), entry.Domains...)
			sort.Strings(domains)

			fmt.Printf("%-12s credibility %.2f", tier, entry.Credibility)
			if entry.AutoExclude {
				fmt.Printf("  [auto-exclude]")
			}
			if len(entry.RiskFlags) > 0 {
				fmt.Printf("  flags: %v", entry.RiskFlags)
			}
			fmt.Println()
			for _, domain := range domains {
				fmt.Printf("    %s\n", domain)
			}
		}
		fmt.Printf("%-12s credibility %.2f  (fallback for unmatched domains)\n",
			model.TierGeneral, reputation.GeneralCredibility)
		return nil
	},
}

var sourcesResolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve a URL to its source reputation profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := reputation.LoadTable(sourcesPath)
		if err != nil {
			return err
		}

		resolver := reputation.NewResolver(table, 0)
		profile := resolver.Resolve(args[0])

		out, err := yaml.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesResolveCmd)
	sourcesCmd.PersistentFlags().StringVar(&sourcesPath, "sources", "", "reputation table YAML (default: built-in table)")
}
