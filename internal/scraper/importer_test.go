package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobtrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!doctype html>
<html><head>
<title>Backend Engineer - Acme | Careers</title>
<meta property="og:title" content="Senior Go Engineer at Acme">
<meta property="og:site_name" content="Acme Corp">
<meta name="description" content="Build   the  platform.">
</head><body>
<h1>Senior Go Engineer</h1>
<div class="job-location">  Remote, EU </div>
</body></html>`

func testConfig() config.ScraperConfig {
	return config.ScraperConfig{UserAgent: "jobtrack-test", Timeout: 5 * time.Second, Workers: 2}
}

func TestImporter_Import_ExtractsPosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jobtrack-test", r.UserAgent())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, postingHTML)
	}))
	defer srv.Close()

	d, err := NewImporter(testConfig(), nil, nil).Import(context.Background(), srv.URL+"/jobs/1#apply")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/jobs/1", d.URL)
	assert.Equal(t, "Senior Go Engineer", d.Position)
	assert.Equal(t, "Acme Corp", d.CompanyName)
	assert.Equal(t, "Remote, EU", d.Location)
	assert.Equal(t, "Build the platform.", d.JobDescription)
	assert.False(t, d.Headless)
}

func TestImporter_Import_RejectsBadURL(t *testing.T) {
	imp := NewImporter(testConfig(), nil, nil)
	for _, raw := range []string{"", "ftp://example.com/x", "/relative", "http://"} {
		_, err := imp.Import(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestImporter_Import_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewImporter(testConfig(), nil, nil).Import(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestImporter_Import_HeadlessFallback(t *testing.T) {
	imp := NewImporter(testConfig(), nil, nil)
	imp.fetch = func(ctx context.Context, target string) (posting, error) {
		return posting{}, nil
	}
	imp.headless = func(ctx context.Context, target string) (posting, error) {
		return posting{Title: "Data Engineer - Globex", Location: "Berlin"}, nil
	}

	d, err := imp.Import(context.Background(), "https://jobs.example.com/42")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", d.Position)
	assert.Equal(t, "Globex", d.CompanyName)
	assert.True(t, d.Headless)
}

func TestImporter_Import_EmptyPage(t *testing.T) {
	imp := NewImporter(testConfig(), nil, nil)
	imp.fetch = func(ctx context.Context, target string) (posting, error) {
		return posting{}, nil
	}

	_, err := imp.Import(context.Background(), "https://jobs.example.com/42")
	assert.ErrorIs(t, err, ErrEmptyPosting)
}

func TestImporter_ImportBatch_KeepsOrder(t *testing.T) {
	var calls atomic.Int32
	imp := NewImporter(testConfig(), nil, nil)
	imp.fetch = func(ctx context.Context, target string) (posting, error) {
		calls.Add(1)
		if target == "https://jobs.example.com/broken" {
			return posting{}, errors.New("boom")
		}
		return posting{OGTitle: "Role " + target[len(target)-1:]}, nil
	}

	urls := []string{
		"https://jobs.example.com/1",
		"not a url",
		"https://jobs.example.com/broken",
		"https://jobs.example.com/2",
	}
	res := imp.ImportBatch(context.Background(), urls)
	require.Len(t, res, len(urls))

	require.NotNil(t, res[0].Draft)
	assert.Equal(t, "Role 1", res[0].Draft.Position)
	assert.Contains(t, res[1].Error, "url must be absolute")
	assert.Equal(t, "boom", res[2].Error)
	require.NotNil(t, res[3].Draft)
	assert.Equal(t, "Role 2", res[3].Draft.Position)
	for i, r := range res {
		assert.Equal(t, urls[i], r.URL)
	}
	assert.EqualValues(t, 3, calls.Load())
}

func TestSplitTitle(t *testing.T) {
	cases := []struct {
		title, site, position, company string
	}{
		{"Go Engineer at Initech", "", "Go Engineer", "Initech"},
		{"Go Engineer - Initech | LinkedIn", "", "Go Engineer", "Initech"},
		{"Go Engineer | Initech Careers", "Initech Careers", "Go Engineer", ""},
		{"Go Engineer - Initech", "Initech", "Go Engineer", ""},
		{"  Staff   Engineer ", "", "Staff Engineer", ""},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		p, c := splitTitle(tc.title, tc.site)
		assert.Equal(t, tc.position, p, tc.title)
		assert.Equal(t, tc.company, c, tc.title)
	}
}
