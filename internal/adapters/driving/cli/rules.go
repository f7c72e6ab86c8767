package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/fairview-data/reportex/internal/core/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage rule profiles",
	Long: `Rule profiles are TOML files holding the patterns that drive an
extraction: the segment delimiter, the header and detail patterns, and
the ordered name-cleanup rules.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rule profiles",
	RunE:  runRulesList,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a rule profile as TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShow,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Store the built-in dealership profile under a new name",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesInit,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored rule profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(false); err != nil {
		return err
	}
	names, err := ruleStore.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cmd.Println("No rule profiles stored. Use 'reportex rules init <name>' to create one.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(false); err != nil {
		return err
	}
	rs, err := ruleStore.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := toml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	if err := ensureServices(false); err != nil {
		return err
	}
	name := args[0]
	if _, err := ruleStore.Get(cmd.Context(), name); err == nil {
		return fmt.Errorf("%w: profile %q", domain.ErrAlreadyExists, name)
	}
	rs := domain.DefaultRuleSet()
	rs.Name = name
	if err := ruleStore.Save(cmd.Context(), rs); err != nil {
		return err
	}
	cmd.Printf("Created profile %q\n", name)
	return nil
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(false); err != nil {
		return err
	}
	if err := ruleStore.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted profile %q\n", args[0])
	return nil
}
