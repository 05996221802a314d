package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)
	ctx := context.Background()

	doc, err := srv.Client().GetDoc(ctx, "/")
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find("a:contains('Get your free quote')").Length())
	require.Equal(t, 1, doc.Find(".site-header nav a[href='/providers']").Length())
	require.Equal(t, 1, doc.Find(".site-footer a[href='/privacy']").Length())
}

func Test_application_staticAssets(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)
	ctx := context.Background()

	resp, err := srv.Client().Get(ctx, "/static/main.css")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
}

func Test_application_legalPages(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)
	ctx := context.Background()

	privacy, err := srv.Client().GetDoc(ctx, "/privacy")
	require.NoError(t, err)
	require.Contains(t, privacy.Find("h1").Text(), "Privacy policy")

	terms, err := srv.Client().GetDoc(ctx, "/terms")
	require.NoError(t, err)
	require.Contains(t, terms.Find("h1").Text(), "Terms of service")
}
