package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacsboard/pacsboard/internal/query"
)

func pageLinks(t *testing.T, spec query.Spec, totalPages int) map[string]url.Values {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/worklist", nil)
	setPageLinks(rec, req, spec, totalPages)

	links := map[string]url.Values{}
	for _, header := range rec.Result().Header.Values("Link") {
		parts := strings.SplitN(header, ">; rel=", 2)
		require.Len(t, parts, 2)
		u, err := url.Parse(strings.TrimPrefix(parts[0], "<"))
		require.NoError(t, err)
		links[strings.Trim(parts[1], `"`)] = u.Query()
	}
	return links
}

func TestPageLinksMiddlePage(t *testing.T) {
	links := pageLinks(t, query.Spec{Page: 2, Limit: 10, Modality: "CT"}, 3)

	require.Contains(t, links, "prev")
	require.Contains(t, links, "next")
	assert.Equal(t, "1", links["prev"].Get("page"))
	assert.Equal(t, "3", links["next"].Get("page"))
	assert.Equal(t, "CT", links["prev"].Get("modality"), "links carry the filter state")
}

func TestPageLinksFirstPage(t *testing.T) {
	links := pageLinks(t, query.Spec{Page: 1, Limit: 10}, 3)

	assert.NotContains(t, links, "prev")
	assert.Contains(t, links, "next")
}

func TestPageLinksLastPage(t *testing.T) {
	links := pageLinks(t, query.Spec{Page: 3, Limit: 10}, 3)

	assert.Contains(t, links, "prev")
	assert.NotContains(t, links, "next")
}

func TestPageLinksPastTheEndStillOffersPrev(t *testing.T) {
	// The filtered set shrank under the client; page 5 of 3 must still
	// link back.
	links := pageLinks(t, query.Spec{Page: 5, Limit: 10}, 3)

	require.Contains(t, links, "prev")
	assert.Equal(t, "4", links["prev"].Get("page"))
	assert.NotContains(t, links, "next")
}

func TestPageLinksFetchAllEmitsNone(t *testing.T) {
	links := pageLinks(t, query.Spec{Page: 1, Limit: 10, All: true}, 1)
	assert.Empty(t, links)
}
