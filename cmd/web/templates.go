package main

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/smarthealthquote/smarthealthquote/internal/contexthelpers"
	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/ssr"
	"github.com/smarthealthquote/smarthealthquote/ui"
	"log/slog"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

// placeholderFuncs lets the templates parse before the per-request FuncMap is
// installed in render.
func placeholderFuncs() template.FuncMap {
	return template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
	}
}

func requestFuncs(r *http.Request) template.FuncMap {
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	}
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside ui/templates/pages. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	return template.New(pageName).Funcs(placeholderFuncs()).ParseFS(ui.Files,
		"templates/base.gohtml",
		"templates/partials/*.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	)
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}
	t.Funcs(requestFuncs(r))

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	out := new(bytes.Buffer)
	if err = ssr.ExpandPage(out, buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "expand custom elements", slog.String("template", file)))
		return
	}

	w.WriteHeader(status)

	_, _ = out.WriteTo(w)
}

// renderFragment renders a named partial template through the custom element
// expansion and returns the HTML, ready for an htmx swap or an SSE data line.
func (app *application) renderFragment(r *http.Request, name string, data any) (template.HTML, error) {
	t, err := template.New(name).Funcs(placeholderFuncs()).ParseFS(ui.Files, "templates/partials/*.gohtml")
	if err != nil {
		return "", errors.Wrap(err, "parse partials", slog.String("fragment", name))
	}
	t.Funcs(requestFuncs(r))

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		return "", errors.Wrap(err, "execute fragment", slog.String("fragment", name))
	}

	out := new(bytes.Buffer)
	if err = ssr.ExpandCustomElements(out, buf); err != nil {
		return "", errors.Wrap(err, "expand custom elements", slog.String("fragment", name))
	}
	return template.HTML(out.String()), nil //nolint:gosec // rendered from our own templates.
}
