package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/scraper"
)

type PostingImporter interface {
	Import(ctx context.Context, rawURL string) (application.Draft, error)
	ImportBatch(ctx context.Context, urls []string) []application.ImportResult
}

type ImportUsecase interface {
	Import(ctx context.Context, rawURL string) (application.Draft, error)
	ImportBatch(ctx context.Context, urls []string) ([]application.ImportResult, error)
}

type Import struct {
	importer PostingImporter
	maxBatch int
}

func NewImportUsecase(importer PostingImporter, maxBatch int) *Import {
	if maxBatch <= 0 {
		maxBatch = 20
	}
	return &Import{importer: importer, maxBatch: maxBatch}
}

func (u *Import) Import(ctx context.Context, rawURL string) (application.Draft, error) {
	if strings.TrimSpace(rawURL) == "" {
		return application.Draft{}, invalid("url is required")
	}
	d, err := u.importer.Import(ctx, rawURL)
	if err != nil {
		return application.Draft{}, importErr(err)
	}
	return d, nil
}

func (u *Import) ImportBatch(ctx context.Context, urls []string) ([]application.ImportResult, error) {
	clean := make([]string, 0, len(urls))
	seen := map[string]struct{}{}
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		clean = append(clean, raw)
	}
	if len(clean) == 0 {
		return nil, invalid("urls must contain at least one url")
	}
	if len(clean) > u.maxBatch {
		return nil, invalid("at most %d urls per batch", u.maxBatch)
	}
	return u.importer.ImportBatch(ctx, clean), nil
}

func importErr(err error) error {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		return invalid("%s", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: could not import posting: %s", ErrUpstream, err.Error())
}
