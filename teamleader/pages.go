package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
)

// pages lazily walks a paginated list endpoint. Each call starts at
// page 0 and merges the filter fields over the page cursor. A page
// shorter than the page size is the only termination signal the API
// offers, so a page of exactly the page size always costs one more
// fetch even when that next page turns out empty. One page is buffered
// at a time; breaking out of the range issues no further requests.
func pages[T any](ctx context.Context, c *Client, endpoint string, filter Fields) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for pageno := 0; ; pageno++ {
			payload := Fields{"amount": c.pageSize, "pageno": pageno}
			maps.Copy(payload, filter)

			raw, err := c.do(ctx, endpoint, payload)
			if err != nil {
				yield(zero, err)
				return
			}

			var page []T
			if err := json.Unmarshal(raw, &page); err != nil {
				yield(zero, fmt.Errorf("failed to parse %s page %d: %w", endpoint, pageno, err))
				return
			}

			c.logger.Debug().
				Str("endpoint", endpoint).
				Int("pageno", pageno).
				Int("count", len(page)).
				Msg("Retrieved page")

			for _, record := range page {
				if !yield(record, nil) {
					return
				}
			}

			if len(page) < c.pageSize {
				return
			}
		}
	}
}

// collect drains a record sequence into a slice, stopping at the first
// error.
func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var records []T
	for record, err := range seq {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
