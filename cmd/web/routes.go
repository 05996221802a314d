package main

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/smarthealthquote/smarthealthquote/ui"
)

const pageTimeout = 5 * time.Second

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", cacheForeverHeaders(http.FileServerFS(ui.Files)))
	mux.Handle("GET /api/healthy", http.HandlerFunc(app.healthy))

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)
	page := func(h http.HandlerFunc) http.Handler {
		return timeoutHandler(dynamic.ThenFunc(h), pageTimeout)
	}

	mux.Handle("GET /{$}", page(app.home))
	mux.Handle("GET /chat", page(app.chat))
	mux.Handle("POST /chat/messages", page(app.chatMessage))
	mux.Handle("GET /quote", page(app.quote))
	mux.Handle("GET /providers", page(app.providerDirectory))
	mux.Handle("GET /providers/{id}", page(app.providerDetail))
	mux.Handle("GET /privacy", page(app.privacy))
	mux.Handle("GET /terms", page(app.terms))

	// The turn stream outlives the page deadline and needs the SSE-safe
	// session load.
	stream := alice.New(app.serverSentEventMiddleware, noSurf, commonContext)
	mux.Handle("GET /chat/stream", stream.ThenFunc(app.chatStream))

	return app.recoverPanic(app.logRequest(app.secureHeaders(mux)))
}
