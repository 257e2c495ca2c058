package scraper

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

const extractScript = `(() => {
	const meta = (sel) => { const el = document.querySelector(sel); return el ? (el.getAttribute('content') || '') : ''; };
	const text = (sel) => { const el = document.querySelector(sel); return el ? el.innerText : ''; };
	return {
		og_title: meta('meta[property="og:title"]') || meta('meta[name="twitter:title"]'),
		site_name: meta('meta[property="og:site_name"]'),
		title: document.title || '',
		h1: text('h1'),
		description: meta('meta[property="og:description"]') || meta('meta[name="description"]'),
		location: text('[itemprop="jobLocation"]') || text('[class*="location"]'),
		body: text('[itemprop="description"]') || text('[class*="description"]'),
	};
})()`

type headlessPosting struct {
	OGTitle     string `json:"og_title"`
	SiteName    string `json:"site_name"`
	Title       string `json:"title"`
	H1          string `json:"h1"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Body        string `json:"body"`
}

// fetchHeadless renders the page in Chrome for postings that build their
// markup client-side.
func (i *Importer) fetchHeadless(ctx context.Context, target string) (posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(i.cfg.UserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeout := i.cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	reqCtx, reqCancel := context.WithTimeout(browserCtx, timeout)
	defer reqCancel()

	var hp headlessPosting
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Evaluate(extractScript, &hp),
	)
	if err != nil {
		return posting{}, err
	}
	return posting{
		OGTitle:     cleanText(hp.OGTitle),
		SiteName:    cleanText(hp.SiteName),
		Title:       cleanText(hp.Title),
		H1:          cleanText(hp.H1),
		Description: cleanText(hp.Description),
		Location:    cleanText(hp.Location),
		Body:        cleanText(hp.Body),
	}, nil
}
