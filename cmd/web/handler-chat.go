package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/random"
	"github.com/smarthealthquote/smarthealthquote/internal/wizard"
	"log/slog"
)

const turnIDLength = 12

// consumerTimeout bounds how long a turn producer waits for the SSE stream to
// pick up an event before giving up on the consumer. The transcript keeps the
// messages, so a dropped stream only loses the live push.
const consumerTimeout = 10 * time.Second

type chatTemplateData struct {
	BaseTemplateData

	Stages   []wizard.Stage
	Messages []wizard.Message
	Done     bool
}

type chatTurnData struct {
	UserMessage wizard.Message
	TurnID      string
}

func (app *application) chat(w http.ResponseWriter, r *http.Request) {
	session, err := app.wizardSession(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := chatTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stages:           session.Stages(),
		Messages:         session.Transcript(),
		Done:             session.Done(),
	}
	app.render(w, r, http.StatusOK, "chat", data)
}

// chatMessage records one user turn. The form carries either an "option"
// value from a scripted reply button or free text in "message".
func (app *application) chatMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	session, err := app.wizardSession(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var (
		userMsg wizard.Message
		events  <-chan wizard.Event
		ok      bool
	)
	if option := r.PostForm.Get("option"); option != "" {
		userMsg, events, ok = session.SelectOption(option)
	} else {
		userMsg, events, ok = session.SubmitFreeText(r.PostForm.Get("message"))
	}

	h := app.htmx.NewHandler(w, r)
	if !ok {
		// Empty input or a finished conversation. Nothing to swap in.
		if h.Request().HxRequest {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	if !h.Request().HxRequest {
		// No-JS fallback: wait out the delayed bot reply, then show the
		// refreshed transcript.
		for range events {
		}
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	turnID, err := random.Letters(turnIDLength)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "generate turn ID"))
		return
	}

	// Hand the turn's events to the stream endpoint. The unbuffered channel
	// blocks the producer until the browser's SSE request subscribes.
	producer := make(chan wizard.Event)
	app.turns.Publish(turnID, producer)
	go func() {
		defer func() {
			close(producer)
			app.turns.Unpublish(turnID)
		}()
		for ev := range events {
			select {
			case producer <- ev:
			case <-time.After(consumerTimeout):
				return
			}
		}
	}()

	fragment, err := app.renderFragment(r, "turn", chatTurnData{
		UserMessage: userMsg,
		TurnID:      turnID,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if _, err = h.Write([]byte(fragment)); err != nil {
		app.serverError(w, r, err)
		return
	}
}

// chatStream pushes one turn's bot replies to the browser as Server Sent
// Events. The stream ends with a "done" event once the turn completes.
func (app *application) chatStream(w http.ResponseWriter, r *http.Request) {
	turnID := r.URL.Query().Get("turn")
	if turnID == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	var events chan wizard.Event
	select {
	case events = <-app.turns.Subscribe(turnID):
	case <-r.Context().Done():
		return
	}
	if events == nil {
		// The turn is unknown or already finished. The transcript has the
		// messages; tell the client to stop listening.
		writeSSEEvent(w, "done", "")
		flusher.Flush()
		return
	}

	for ev := range events {
		if err := app.writeTurnEvent(w, r, ev); err != nil {
			app.logger.LogAttrs(r.Context(), slog.LevelWarn, "write turn event",
				slog.String("turn", turnID), errors.SlogError(err))
			return
		}
		flusher.Flush()
	}

	writeSSEEvent(w, "done", "")
	flusher.Flush()
}

func (app *application) writeTurnEvent(w io.Writer, r *http.Request, ev wizard.Event) error {
	switch ev.Kind {
	case wizard.EventMessage, wizard.EventQuoteFailed:
		fragment, err := app.renderFragment(r, "message", ev.Message)
		if err != nil {
			return errors.Wrap(err, "render message fragment")
		}
		writeSSEEvent(w, "message", string(fragment))
	case wizard.EventQuoteReady:
		fragment, err := app.renderFragment(r, "quote-link", nil)
		if err != nil {
			return errors.Wrap(err, "render quote link")
		}
		writeSSEEvent(w, "quote-ready", string(fragment))
	}
	return nil
}

// writeSSEEvent writes one Server Sent Event. Multi-line payloads need a
// data: prefix on every line.
func writeSSEEvent(w io.Writer, event, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
}
