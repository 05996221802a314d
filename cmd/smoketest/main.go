package main

import (
	"context"
	"log/slog"
	neturl "net/url"
	"os"
	"strings"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/e2etest"
	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/logging"
)

// TestConversation walks the scripted quote conversation end to end through
// the no-JS form flow and verifies that the quote page renders.
func TestConversation(client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) //nolint:mnd // production reply delays add up.
	defer cancel()

	doc, err := client.GetDoc(ctx, "/chat")
	if err != nil {
		return errors.Wrap(err, "open chat")
	}
	if !strings.Contains(doc.Find("#transcript").Text(), "Ready to get started?") {
		return errors.New("greeting not found in transcript")
	}

	steps := []neturl.Values{
		{"option": {"Yes, let's begin"}},
		{"message": {"42"}},
		{"message": {"None"}},
		{"option": {"Very active"}},
		{"option": {"Comprehensive coverage"}},
	}
	for i, fields := range steps {
		if doc, err = client.SubmitForm(ctx, "/chat", "/chat/messages", fields); err != nil {
			return errors.Wrap(err, "submit turn", slog.Int("turn", i))
		}
	}

	// The form flow waits out the bot replies, so the quote should be ready.
	// Poll briefly anyway to absorb scheduling slack on the server.
	for {
		if doc, err = client.GetDoc(ctx, "/quote"); err != nil {
			return errors.Wrap(err, "get quote page")
		}
		if strings.Contains(doc.Find("h1").Text(), "Comprehensive Health Plus") {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "quote page never rendered")
		case <-time.After(500 * time.Millisecond): //nolint:mnd // poll interval
		}
	}
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestConversation(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing conversation", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
