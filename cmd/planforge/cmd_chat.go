package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"planforge/internal/research"
)

var chatCmd = &cobra.Command{
	Use:   "chat [company]",
	Short: "Interactive conversation about a researched company",
	Long: `Starts a conversational session. With a company argument the stored
plan is loaded as context; questions then run against it plus the
conversation history.

Session commands:
  /plan    show the current plan
  /clear   forget the conversation history
  /quit    end the session`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	p, err := a.pipeline(cmd.Context())
	if err != nil {
		return err
	}

	session := research.NewSession()
	var plan research.AccountPlan

	if len(args) > 0 {
		session.Company = strings.Join(args, " ")
		var ok bool
		if plan, ok = a.store.Load(session.Company); ok {
			fmt.Printf("Loaded stored plan for %s.\n", session.Company)
			// Seed the conversation with the plan so questions can
			// reference it without re-running research.
			session.Record(
				fmt.Sprintf("Here is the current account plan for %s:\n%s", session.Company, plan.Markdown(a.cfg.Plan.Sections)),
				"Understood. Ask me anything about this plan.")
		} else {
			fmt.Printf("No stored plan for %q; chatting without plan context.\n", session.Company)
		}
	}

	fmt.Println("Type /quit to end the session.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return scanner.Err()
		case "/clear":
			session.ClearHistory()
			fmt.Println("History cleared.")
			continue
		case "/plan":
			if plan == nil {
				fmt.Println("No plan loaded.")
			} else {
				printPlan(plan, a.cfg.Plan.Sections)
			}
			continue
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.callTimeout())
		reply := p.Chat(ctx, session, line)
		cancel()

		fmt.Printf("\n%s\n\n", reply)
	}
	return scanner.Err()
}
