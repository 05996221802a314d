package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/smarthealthquote/smarthealthquote/internal/e2etest"
	"github.com/stretchr/testify/require"
)

// Test_application_chat_fullConversation walks the scripted conversation end
// to end through the no-JS form flow: every post waits out the bot reply and
// redirects back to the refreshed transcript.
func Test_application_chat_fullConversation(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)
	client := srv.Client()
	ctx := context.Background()

	// Until the conversation has produced a quote, the quote page falls back
	// to the chat.
	doc, err := client.GetDoc(ctx, "/quote")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#transcript").Length())

	transcript := func(doc *goquery.Document) string {
		return doc.Find("#transcript").Text()
	}

	require.Contains(t, transcript(doc), "Ready to get started?")
	require.Equal(t, 1, doc.Find(`button[value="Yes, let's begin"]`).Length())
	require.Equal(t, 1, doc.Find(`button[value="Tell me more first"]`).Length())

	submit := func(fields neturl.Values) *goquery.Document {
		t.Helper()
		result, submitErr := client.SubmitForm(ctx, "/chat", "/chat/messages", fields)
		require.NoError(t, submitErr)
		return result
	}

	doc = submit(neturl.Values{"option": {"Tell me more first"}})
	require.Contains(t, transcript(doc), "four short questions")
	require.Equal(t, 1, doc.Find(`button[value="Okay, let's begin"]`).Length())

	doc = submit(neturl.Values{"option": {"Okay, let's begin"}})
	require.Contains(t, transcript(doc), "How old are you?")
	require.Equal(t, 1, doc.Find(".chat-stages li.completed").Length())

	doc = submit(neturl.Values{"message": {"34"}})
	require.Contains(t, transcript(doc), "pre-existing medical conditions")

	doc = submit(neturl.Values{"message": {"None"}})
	require.Contains(t, transcript(doc), "lifestyle and activity level")
	require.Equal(t, 1, doc.Find(`button[value="Moderately active"]`).Length())

	doc = submit(neturl.Values{"option": {"Moderately active"}})
	require.Contains(t, transcript(doc), "What kind of coverage")
	require.Equal(t, 1, doc.Find(`button[value="Comprehensive coverage"]`).Length())

	doc = submit(neturl.Values{"option": {"Comprehensive coverage"}})
	require.Contains(t, transcript(doc), "personalized quote is ready")
	require.Equal(t, 1, doc.Find("#quote-slot a[href='/quote']").Length())
	require.Equal(t, 5, doc.Find(".chat-stages li.completed").Length())

	messageCount := doc.Find("#transcript .message").Length()

	// The quote page renders the terminal quote.
	doc, err = client.GetDoc(ctx, "/quote")
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "Comprehensive Health Plus")
	require.Contains(t, doc.Find(".quote-summary").Text(), "$285.00")
	require.Contains(t, doc.Find(".quote-summary").Text(), "$1500.00")

	// Submissions after the terminal quote leave the transcript untouched.
	doc = submit(neturl.Values{"message": {"one more thing"}})
	require.Equal(t, messageCount, doc.Find("#transcript .message").Length())
}

// Test_application_chat_turnStream drives the conversation the way the
// browser does: htmx form posts answered with a turn fragment, bot replies
// delivered over the turn's SSE stream.
func Test_application_chat_turnStream(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)
	client := srv.Client()
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/chat")
	require.NoError(t, err)
	csrfToken, err := client.CSRFToken(doc, "/chat/messages")
	require.NoError(t, err)

	events := postTurn(t, ctx, client, csrfToken, neturl.Values{"option": {"Yes, let's begin"}})
	require.Contains(t, events["message"], "How old are you?")

	events = postTurn(t, ctx, client, csrfToken, neturl.Values{"message": {"29"}})
	require.Contains(t, events["message"], "pre-existing medical conditions")

	events = postTurn(t, ctx, client, csrfToken, neturl.Values{"message": {"None"}})
	require.Contains(t, events["message"], "lifestyle and activity level")

	events = postTurn(t, ctx, client, csrfToken, neturl.Values{"option": {"Sedentary"}})
	require.Contains(t, events["message"], "What kind of coverage")

	events = postTurn(t, ctx, client, csrfToken, neturl.Values{"option": {"Basic health insurance"}})
	require.Contains(t, events["message"], "personalized quote is ready")
	require.Contains(t, events["quote-ready"], "/quote")

	// A late subscriber to a finished turn only gets the end-of-turn signal;
	// the transcript carries the messages.
	doc, err = client.GetDoc(ctx, "/chat")
	require.NoError(t, err)
	require.Contains(t, doc.Find("#transcript").Text(), "personalized quote is ready")
}

// postTurn submits one htmx turn, follows the turn fragment's SSE stream
// until the turn completes, and returns the received events keyed by name.
func postTurn(
	t *testing.T,
	ctx context.Context,
	client *e2etest.Client,
	csrfToken string,
	fields neturl.Values,
) map[string]string {
	t.Helper()

	fields.Set("csrf_token", csrfToken)
	header := http.Header{}
	header.Set("HX-Request", "true")
	resp, err := client.PostForm(ctx, "/chat/messages", fields, header)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode, "unexpected response: %s", string(body))

	fragment, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 1, fragment.Find(".message-from-user").Length())
	streamURL, ok := fragment.Find("div[sse-connect]").Attr("sse-connect")
	require.True(t, ok, "turn fragment missing stream element:\n%s", string(body))

	streamResp, err := client.Get(ctx, streamURL)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, streamResp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, streamResp.StatusCode)
	require.Equal(t, "text/event-stream", streamResp.Header.Get("Content-Type"))

	return readSSEEvents(t, streamResp.Body)
}

// readSSEEvents consumes a Server Sent Events body until the "done" event,
// concatenating the data of repeated events under their event name.
func readSSEEvents(t *testing.T, body io.Reader) map[string]string {
	t.Helper()
	events := map[string]string{}
	scanner := bufio.NewScanner(body)
	var (
		current string
		data    strings.Builder
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data.WriteString(strings.TrimPrefix(line, "data: "))
		case line == "":
			if current != "" {
				events[current] += data.String()
			}
			data.Reset()
			if current == "done" {
				return events
			}
			current = ""
		}
	}
	require.NoError(t, scanner.Err())
	t.Fatal("turn stream ended without a done event")
	return events
}
