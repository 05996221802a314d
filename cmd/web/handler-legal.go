package main

import (
	"net/http"
)

func (app *application) privacy(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "privacy", newBaseTemplateData(r))
}

func (app *application) terms(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "terms", newBaseTemplateData(r))
}
