package main

import (
	"database/sql"
	"net/http"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/models"
)

type providersTemplateData struct {
	BaseTemplateData

	Providers []models.Provider
}

type providerTemplateData struct {
	BaseTemplateData

	Provider models.Provider
}

func (app *application) providerDirectory(w http.ResponseWriter, r *http.Request) {
	providers, err := app.providers.List(r.Context())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list providers"))
		return
	}

	data := providersTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Providers:        providers,
	}
	app.render(w, r, http.StatusOK, "providers", data)
}

func (app *application) providerDetail(w http.ResponseWriter, r *http.Request) {
	provider, err := app.providers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			app.clientError(w, r, http.StatusNotFound)
			return
		}
		app.serverError(w, r, errors.Wrap(err, "get provider"))
		return
	}

	data := providerTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Provider:         *provider,
	}
	app.render(w, r, http.StatusOK, "provider", data)
}
