package main

import (
	"net/http"

	"github.com/smarthealthquote/smarthealthquote/internal/models"
)

type quoteTemplateData struct {
	BaseTemplateData

	Quote models.Quote
}

// quote shows the terminal quote. Until the conversation has produced one,
// visitors are sent back to the chat.
func (app *application) quote(w http.ResponseWriter, r *http.Request) {
	session, err := app.wizardSession(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	q, ok := session.Quote()
	if !ok {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	data := quoteTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Quote:            q,
	}
	app.render(w, r, http.StatusOK, "quote", data)
}
