package ssr

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"golang.org/x/net/html"
)

// Class lists for the design-system elements used across the marketing pages
// and the chat view. Templates reference the elements by name so that the
// styling lives in one place.
const (
	primaryButtonClass = "rounded-lg bg-teal-700 text-sm font-semibold text-white shadow-sm px-4 py-2.5 hover:bg-teal-500"
	optionButtonClass  = "rounded-full border border-teal-700 text-sm text-teal-700 px-4 py-1.5 hover:bg-teal-50"
)

func expandDoc(doc *goquery.Document) {
	expand := func(selector, class string) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr("as")
			s.AddClass(class)
		})
	}
	expand(`[as="button-primary"]`, primaryButtonClass)
	expand(`[as="option-button"]`, optionButtonClass)
}

// ExpandCustomElements rewrites the custom elements in the rendered HTML
// fragment into styled standard elements.
//
// `<x as="button-primary">` and `<x as="option-button">` keep their tag and
// gain the design-system classes; the marker attribute is removed.
func ExpandCustomElements(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse html fragment")
	}

	expandDoc(doc)

	// goquery wraps fragments in html/head/body; render only the body
	// children to recover the original fragment shape.
	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return nil
	}
	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if err = html.Render(writer, c); err != nil {
			return errors.Wrap(err, "render html")
		}
	}
	return nil
}

// ExpandPage is ExpandCustomElements for a full HTML document. The doctype
// and head are preserved.
func ExpandPage(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse html document")
	}

	expandDoc(doc)

	if err = html.Render(writer, doc.Get(0)); err != nil {
		return errors.Wrap(err, "render html")
	}
	return nil
}
