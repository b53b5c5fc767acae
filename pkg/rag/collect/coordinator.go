package collect

import (
	"context"
	"sync"

	"ai-websearch-be/internal/pkg/logger"
	"ai-websearch-be/pkg/rag/extract"
	"ai-websearch-be/pkg/rag/fetch"
	"ai-websearch-be/pkg/rag/index"
	"ai-websearch-be/pkg/rag/sources"
)

// Coordinator fans fetch → extract → index out over all candidate sources
// and joins on their collective completion. Per-source failures are absorbed;
// the barrier's latency is bounded by the fetch deadline plus index time,
// not the sum across sources.
type Coordinator struct {
	fetcher *fetch.Fetcher
	indexer *index.Indexer
	logger  logger.ILogger
}

func NewCoordinator(fetcher *fetch.Fetcher, indexer *index.Indexer, log logger.ILogger) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		indexer: indexer,
		logger:  log,
	}
}

// Collect never fails: it returns between 0 and len(candidates) excerpts in
// candidate order, settling only once every per-source task has settled.
func (c *Coordinator) Collect(ctx context.Context, candidates []sources.CandidateSource, query string) []index.Excerpt {
	// Slot per candidate; each goroutine owns exactly one index, so no lock
	results := make([]*index.Excerpt, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(slot int, cand sources.CandidateSource) {
			defer wg.Done()
			results[slot] = c.processSource(ctx, cand, query)
		}(i, cand)
	}
	wg.Wait()

	excerpts := make([]index.Excerpt, 0, len(candidates))
	for _, res := range results {
		if res != nil {
			excerpts = append(excerpts, *res)
		}
	}

	// Redundant given the candidate cap, but enforced again as an invariant
	if len(excerpts) > sources.MaxCandidates {
		excerpts = excerpts[:sources.MaxCandidates]
	}

	if len(excerpts) < len(candidates) {
		c.logger.Info("Coordinator", "Collected fewer excerpts than candidates", map[string]interface{}{
			"candidates": len(candidates),
			"excerpts":   len(excerpts),
		})
	}

	return excerpts
}

func (c *Coordinator) processSource(ctx context.Context, cand sources.CandidateSource, query string) *index.Excerpt {
	html, err := c.fetcher.Fetch(cand.Link)
	if err != nil {
		c.logger.Warn("Coordinator", "Failed to fetch content, skipping", map[string]interface{}{
			"link":  cand.Link,
			"error": err.Error(),
		})
		return nil
	}

	text := extract.MainContent(html)

	excerpt, err := c.indexer.Index(ctx, text, query, cand.Link)
	if err != nil {
		c.logger.Warn("Coordinator", "Failed to index content, skipping", map[string]interface{}{
			"link":  cand.Link,
			"error": err.Error(),
		})
		return nil
	}
	return excerpt
}
