package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_providerDirectory(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)

	doc, err := srv.Client().GetDoc(context.Background(), "/providers")
	require.NoError(t, err)

	cards := doc.Find(".provider-card")
	require.Equal(t, 5, cards.Length())
	require.Equal(t, "HealthCorp", cards.First().Find("h2").Text())

	// Provider names link to their detail pages.
	href, ok := cards.First().Find("h2 a").Attr("href")
	require.True(t, ok)
	require.Equal(t, "/providers/healthcorp", href)
}

func Test_application_providerDetail(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)

	doc, err := srv.Client().GetDoc(context.Background(), "/providers/healthcorp")
	require.NoError(t, err)
	require.Equal(t, "HealthCorp", doc.Find("h1").Text())
	require.Contains(t, doc.Find(".provider-rating").Text(), "out of 5")
}

func Test_application_providerDetail_unknownID(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)

	resp, err := srv.Client().Get(context.Background(), "/providers/no-such-provider")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
