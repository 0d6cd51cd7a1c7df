package extract

import (
	"context"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// CareersSource couples page retrieval with candidate extraction. This is
// the boundary the orchestrator sees: one call, candidates out.
type CareersSource struct {
	fetcher   *PageFetcher
	extractor *CareersExtractor
}

// NewCareersSource wires a fetcher and an extractor together.
func NewCareersSource(fetcher *PageFetcher, extractor *CareersExtractor) *CareersSource {
	return &CareersSource{fetcher: fetcher, extractor: extractor}
}

// Fetch retrieves the listing page and extracts candidates from it. A
// retrieval failure comes back as an EXTRACTION domain error; a page that
// parses to nothing is an empty slice, not an error.
func (s *CareersSource) Fetch(ctx context.Context) ([]model.Posting, error) {
	page, err := s.fetcher.FetchPage(ctx)
	if err != nil {
		return nil, errors.Extraction("retrieve careers page", err)
	}
	return s.extractor.Extract(page), nil
}
