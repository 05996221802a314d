// Package chat runs the quote conversation as a terminal session.
package chat

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/smarthealthquote/smarthealthquote/internal/models"
	"github.com/smarthealthquote/smarthealthquote/internal/wizard"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "chat",
	Title: "Conversation commands",
}

var Chat = &cobra.Command{
	Use:     "chat",
	GroupID: "chat",
	Short:   "Run the quote conversation in the terminal",
	Long: `Runs the same scripted conversation as the web application, reading
answers from stdin. Scripted replies are shown in brackets; type one of them
or a free-text answer.`,
	RunE: run,
}

func run(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := wizard.NewSession(wizard.Config{
		ReplyDelay: 0,
		QuoteDelay: 0,
		Quoter:     wizard.StaticQuoter{},
		Logger:     logger,
	})
	defer session.Close()

	out := cmd.OutOrStdout()
	for _, msg := range session.Transcript() {
		printMessage(out, msg)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for !session.Done() {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		_, events, ok := session.SubmitFreeText(strings.TrimSpace(scanner.Text()))
		if !ok {
			continue
		}
		for ev := range events {
			printMessage(out, ev.Message)
			if ev.Kind == wizard.EventQuoteReady && ev.Quote != nil {
				printQuote(out, *ev.Quote)
			}
		}
	}
	return scanner.Err()
}

func printMessage(w io.Writer, msg wizard.Message) {
	if msg.Sender != wizard.SenderBot {
		return
	}
	_, _ = fmt.Fprintf(w, "\nassistant: %s\n", msg.Content)
	for _, option := range msg.Options {
		_, _ = fmt.Fprintf(w, "  [%s]\n", option)
	}
}

func printQuote(w io.Writer, q models.Quote) {
	_, _ = fmt.Fprintf(w, "\n%s\n", q.PlanName)
	_, _ = fmt.Fprintf(w, "  Monthly premium:       %s\n", q.MonthlyPremium())
	_, _ = fmt.Fprintf(w, "  Deductible:            %s\n", q.Deductible())
	_, _ = fmt.Fprintf(w, "  Out-of-pocket maximum: %s\n", q.OutOfPocketMax())
	_, _ = fmt.Fprintf(w, "  Coverage:              %s\n", q.CoverageType)
	_, _ = fmt.Fprintf(w, "  Network:               %s\n", q.NetworkType)
	for _, benefit := range q.Benefits {
		_, _ = fmt.Fprintf(w, "  - %s\n", benefit)
	}
}
