package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/domain/application"
	"jobtrack/internal/metrics"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const maxDescriptionRunes = 20000

var (
	ErrInvalidURL   = errors.New("url must be absolute http(s)")
	ErrEmptyPosting = errors.New("no posting details found")
)

// posting is what the page exposes before any cleanup.
type posting struct {
	OGTitle     string
	SiteName    string
	Title       string
	H1          string
	Description string
	Location    string
	Body        string
}

func (p posting) empty() bool {
	return pickNonEmpty(p.OGTitle, p.Title, p.H1) == ""
}

type fetchFunc func(ctx context.Context, rawURL string) (posting, error)

// Importer turns a job posting URL into an application draft.
type Importer struct {
	cfg      config.ScraperConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
	fetch    fetchFunc
	headless fetchFunc
}

func NewImporter(cfg config.ScraperConfig, logger *zap.Logger, m *metrics.Metrics) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	imp := &Importer{cfg: cfg, logger: logger, metrics: m}
	imp.fetch = imp.fetchStatic
	if cfg.Headless {
		imp.headless = imp.fetchHeadless
	}
	return imp
}

func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u.Fragment = ""
	return u.String(), nil
}

func (i *Importer) Import(ctx context.Context, rawURL string) (application.Draft, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		i.metrics.Import("invalid")
		return application.Draft{}, err
	}

	start := time.Now()
	p, err := i.fetch(ctx, target)
	usedHeadless := false
	if i.headless != nil && (err != nil || p.empty()) {
		i.logger.Debug("static import found nothing, retrying headless", zap.String("url", target), zap.Error(err))
		if hp, herr := i.headless(ctx, target); herr == nil {
			p, err, usedHeadless = hp, nil, true
		} else if err == nil {
			err = herr
		}
	}
	if err == nil && p.empty() {
		err = ErrEmptyPosting
	}
	if err != nil {
		i.metrics.Import("error")
		i.logger.Warn("posting import failed", zap.String("url", target), zap.Error(err))
		return application.Draft{}, err
	}

	d := draftFrom(target, p)
	d.Headless = usedHeadless
	i.metrics.Import("ok")
	i.logger.Info("posting imported",
		zap.String("url", target),
		zap.String("position", d.Position),
		zap.String("company", d.CompanyName),
		zap.Bool("headless", usedHeadless),
		zap.Duration("took", time.Since(start)),
	)
	return d, nil
}

// ImportBatch imports every URL through the rate-limited worker pool. The
// result order matches the input order.
func (i *Importer) ImportBatch(ctx context.Context, urls []string) []application.ImportResult {
	out := make([]application.ImportResult, len(urls))
	if len(urls) == 0 {
		return out
	}

	pool := NewWorkerPool(i.cfg.Workers, len(urls))
	pool.SetRateLimit(i.cfg.RatePerSec)
	results := pool.Run(ctx)
	for idx, raw := range urls {
		out[idx].URL = strings.TrimSpace(raw)
		pool.Submit(idx, func(ctx context.Context) error {
			d, err := i.Import(ctx, raw)
			if err != nil {
				return err
			}
			out[idx].Draft = &d
			return nil
		})
	}
	pool.Close()

	done := make([]bool, len(urls))
	for res := range results {
		done[res.Index] = true
		if res.Err != nil {
			out[res.Index].Error = res.Err.Error()
		}
	}
	for idx := range out {
		if !done[idx] && ctx.Err() != nil {
			out[idx].Error = ctx.Err().Error()
		}
	}
	return out
}

func (i *Importer) fetchStatic(ctx context.Context, target string) (posting, error) {
	c := colly.NewCollector(colly.UserAgent(i.cfg.UserAgent))
	if i.cfg.Timeout > 0 {
		c.SetRequestTimeout(i.cfg.Timeout)
	}

	var p posting
	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		meta := func(sel string) string {
			return cleanText(e.DOM.Find(sel).First().AttrOr("content", ""))
		}
		p.OGTitle = pickNonEmpty(meta(`meta[property="og:title"]`), meta(`meta[name="twitter:title"]`))
		p.SiteName = meta(`meta[property="og:site_name"]`)
		p.Title = cleanText(e.DOM.Find("title").First().Text())
		p.H1 = cleanText(e.DOM.Find("h1").First().Text())
		p.Description = pickNonEmpty(
			meta(`meta[property="og:description"]`),
			meta(`meta[name="description"]`),
		)
		p.Location = pickNonEmpty(
			cleanText(e.DOM.Find(`[itemprop="jobLocation"]`).First().Text()),
			cleanText(e.DOM.Find(`[class*="location"]`).First().Text()),
		)
		p.Body = pickNonEmpty(
			cleanText(e.DOM.Find(`[itemprop="description"]`).First().Text()),
			cleanText(e.DOM.Find(`[class*="description"]`).First().Text()),
		)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("fetch %s: status %d", target, r.StatusCode)
			return
		}
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return posting{}, err
	}
	if err := c.Visit(target); err != nil {
		return posting{}, err
	}
	c.Wait()
	if reqErr != nil {
		return posting{}, reqErr
	}
	if err := ctx.Err(); err != nil {
		return posting{}, err
	}
	return p, nil
}

func draftFrom(target string, p posting) application.Draft {
	company := p.SiteName
	position, fromTitle := splitTitle(pickNonEmpty(p.OGTitle, p.Title), company)
	if company == "" {
		company = fromTitle
	}
	if position == "" {
		position = p.H1
	}
	return application.Draft{
		URL:            target,
		Position:       position,
		CompanyName:    company,
		Location:       p.Location,
		JobDescription: truncateRunes(pickNonEmpty(p.Body, p.Description), maxDescriptionRunes),
	}
}

// splitTitle reads "Role at Company", "Role - Company" and "Role | Site"
// shapes. A known site name is stripped instead of being read as the company.
func splitTitle(title, siteName string) (position, company string) {
	title = cleanText(title)
	if title == "" {
		return "", ""
	}
	if siteName != "" {
		for _, sep := range []string{" | ", " - ", " – ", " · "} {
			title = strings.TrimSuffix(title, sep+siteName)
		}
	}
	if idx := strings.Index(title, " | "); idx > 0 {
		title = strings.TrimSpace(title[:idx])
	}
	for _, sep := range []string{" at ", " @ ", " - ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+len(sep):])
		}
	}
	return title, ""
}

func httpHeaders() map[string]string {
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
