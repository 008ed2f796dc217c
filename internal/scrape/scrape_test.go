package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<html><body>
<table class="wikitable">
<tr><th>Title</th><th>Developer</th><th>Publisher</th><th>JP</th><th>EU</th><th>NA</th></tr>
<tr>
  <td><a href="/wiki/Ridge_Racer">Ridge Racer</a></td>
  <td>Namco</td><td>Namco</td>
  <td>December 3, 1994</td><td>September 29, 1995</td><td>September 9, 1995</td>
</tr>
<tr>
  <td><a href="/wiki/Policenauts">Policenauts</a></td>
  <td>Konami</td><td>Konami</td>
  <td>January 19, 1996</td><td>Unreleased</td><td>Unreleased</td>
</tr>
<tr><td>Broken Row</td><td>only three cells</td><td>skip me</td></tr>
</table>
</body></html>`

func TestParse(t *testing.T) {
	games, err := Parse(strings.NewReader(listPage))
	require.NoError(t, err)
	require.Len(t, games, 2)

	rr := games[0]
	assert.Equal(t, "Ridge Racer", rr.Title)
	assert.Equal(t, "Namco", rr.Developer)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Ridge_Racer", rr.ReferenceURL)
	assert.True(t, rr.IsLaunchTitle)
	assert.True(t, rr.RegionJP)
	assert.True(t, rr.RegionEU)
	assert.True(t, rr.RegionNA)

	pn := games[1]
	assert.Equal(t, "Policenauts", pn.Title)
	assert.False(t, pn.IsLaunchTitle)
	assert.True(t, pn.RegionJP)
	assert.False(t, pn.RegionEU, "Unreleased must clear the region flag")
	assert.False(t, pn.RegionNA)
	assert.Empty(t, pn.ReleaseDateEU)
}

func TestParseNoTable(t *testing.T) {
	games, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestClient_FetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "ps1db")
		_, _ = w.Write([]byte(listPage))
	}))
	defer srv.Close()

	c := New(srv.Client(), nil)
	games, err := c.FetchAll(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"})
	require.NoError(t, err)
	assert.Len(t, games, 4, "both pages merged")
}

func TestClient_FetchAll_PageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/bad") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(listPage))
	}))
	defer srv.Close()

	c := New(srv.Client(), nil)
	_, err := c.FetchAll(context.Background(), []string{srv.URL + "/ok", srv.URL + "/bad"})
	assert.Error(t, err)
}
