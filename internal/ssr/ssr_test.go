package ssr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/smarthealthquote/smarthealthquote/internal/ssr"
	"github.com/stretchr/testify/require"
)

func TestExpandCustomElements(t *testing.T) {
	t.Parallel()
	fragment := `<div class="chat-options">` +
		`<button as="option-button" name="option" value="Sedentary">Sedentary</button>` +
		`<button as="button-primary" type="submit">Send</button>` +
		`</div>`

	var out bytes.Buffer
	err := ssr.ExpandCustomElements(&out, strings.NewReader(fragment))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&out)
	require.NoError(t, err)

	option := doc.Find("button[value='Sedentary']")
	require.Equal(t, 1, option.Length())
	require.True(t, option.HasClass("rounded-full"))
	_, hasMarker := option.Attr("as")
	require.False(t, hasMarker, "marker attribute should be removed")

	submit := doc.Find("button[type='submit']")
	require.True(t, submit.HasClass("bg-teal-700"))

	// Untouched markup passes through.
	require.Equal(t, 1, doc.Find("div.chat-options").Length())
}

func TestExpandCustomElements_plainFragment(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := ssr.ExpandCustomElements(&out, strings.NewReader(`<p>hello</p>`))
	require.NoError(t, err)
	require.Equal(t, `<p>hello</p>`, out.String())
}

func TestExpandPage(t *testing.T) {
	t.Parallel()
	page := `<!doctype html><html lang="en"><head><title>t</title></head>` +
		`<body><a as="button-primary" href="/chat">Get a quote</a></body></html>`

	var out bytes.Buffer
	err := ssr.ExpandPage(&out, strings.NewReader(page))
	require.NoError(t, err)

	rendered := out.String()
	require.Contains(t, rendered, "<!DOCTYPE html>")
	require.Contains(t, rendered, "<title>t</title>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	require.NoError(t, err)
	link := doc.Find("a[href='/chat']")
	require.Equal(t, 1, link.Length())
	require.True(t, link.HasClass("bg-teal-700"))
}
