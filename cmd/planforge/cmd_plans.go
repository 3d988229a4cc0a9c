package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"planforge/internal/research"
)

var (
	showRaw      bool
	editContent  string
	editInstruct string
	exportOut    string
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage stored account plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies with stored plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		companies := a.store.ListCompanies()
		if len(companies) == 0 {
			fmt.Println("No plans stored yet. Run 'planforge research <company>' first.")
			return nil
		}
		for _, c := range companies {
			fmt.Println(c)
		}
		return nil
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show [company]",
	Short: "Show a stored plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		plan, ok := a.store.Load(args[0])
		if !ok {
			return fmt.Errorf("no plan stored for %q", args[0])
		}

		if showRaw {
			fmt.Print(plan.Markdown(a.cfg.Plan.Sections))
			return nil
		}
		printPlan(plan, a.cfg.Plan.Sections)
		return nil
	},
}

var plansEditCmd = &cobra.Command{
	Use:   "edit [company] [section]",
	Short: "Replace or regenerate one plan section",
	Long: `Edits a single section of a stored plan. With --content the given
text replaces the section directly. With --instruct the collaborator
rewrites the section from the instruction and the result is shown for
confirmation before saving. Only existing sections can be edited.

Example:
  planforge plans edit "acme corp" pain_points --instruct "focus on logistics costs"`,
	Args: cobra.ExactArgs(2),
	RunE: runPlanEdit,
}

var plansExportCmd = &cobra.Command{
	Use:   "export [company]",
	Short: "Export a plan as JSON with an export timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		out, err := a.store.Export(args[0])
		if err != nil {
			return err
		}

		if exportOut != "" {
			if err := os.WriteFile(exportOut, []byte(out+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported %s to %s\n", args[0], exportOut)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func runPlanEdit(cmd *cobra.Command, args []string) error {
	company, section := args[0], args[1]

	if (editContent == "") == (editInstruct == "") {
		return fmt.Errorf("exactly one of --content or --instruct is required")
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	plan, ok := a.store.Load(company)
	if !ok {
		return fmt.Errorf("no plan stored for %q", company)
	}
	current, ok := plan[section]
	if !ok {
		return fmt.Errorf("plan for %q has no section %q", company, section)
	}

	newContent := editContent
	if editInstruct != "" {
		p, err := a.pipeline(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.callTimeout())
		newContent = p.RegenerateSection(ctx, section, current, editInstruct, nil)
		cancel()

		if research.IsRegenerationFailure(newContent) {
			return fmt.Errorf("section not updated: %s", newContent)
		}

		fmt.Printf("Regenerated %s:\n\n%s\n\n", section, newContent)
		if !confirmSave(os.Stdin) {
			fmt.Println("Update discarded.")
			return nil
		}
	}

	if !a.store.UpdateSection(company, section, newContent) {
		return fmt.Errorf("update failed for %s/%s", company, section)
	}
	fmt.Printf("Updated %s for %s.\n", section, company)
	return nil
}

// confirmSave asks before persisting regenerated content. Anything other
// than an explicit yes discards the update.
func confirmSave(r io.Reader) bool {
	fmt.Print("Save this content? [y/N]: ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// printPlan renders a plan's markdown for the terminal, falling back to the
// raw text when rendering is unavailable (no TTY, unknown terminal).
func printPlan(plan research.AccountPlan, sections []string) {
	md := plan.Markdown(sections)
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
