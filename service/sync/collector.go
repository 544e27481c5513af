package sync

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the per_page value sent on every listing request.
	DefaultPageSize = 100
	// DefaultPageCap bounds pagination regardless of what the server
	// reports, guarding against a runaway or adversarial endpoint.
	DefaultPageCap = 50

	totalPagesHeader = "X-WP-TotalPages"
)

// collectPages walks a paginated listing endpoint and folds the per-page
// batches into one sequence. The walk is all-or-nothing: the first
// classified error aborts and discards everything aggregated so far.
//
// The server-reported total-page header bounds the walk when present; a
// page shorter than pageSize always ends it. A non-array page body is
// treated as a malformed-payload signal and classifies as an auth failure.
func (c *Client) collectPages(path string, base url.Values, pageSize, pageCap int) ([]json.RawMessage, ErrorSet) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}

	var records []json.RawMessage
	totalPages := pageCap

	for page := 1; page <= totalPages && page <= pageCap; page++ {
		q := url.Values{}
		for k, vs := range base {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(pageSize))

		resp, err := c.Get(path, q)
		if errs := Classify(resp, err); !errs.Empty() {
			return nil, errs
		}

		// A body that is not a JSON array (a literal null included, which
		// unmarshals into a nil slice without error) is malformed.
		body := bytes.TrimSpace(resp.Body)
		if len(body) == 0 || body[0] != '[' {
			return nil, ErrorSet{ErrAuthFailure}
		}
		var batch []json.RawMessage
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, ErrorSet{ErrAuthFailure}
		}
		records = append(records, batch...)

		if page == 1 {
			if tp, err := strconv.Atoi(resp.Header.Get(totalPagesHeader)); err == nil && tp > 0 {
				totalPages = tp
			}
		}
		if len(batch) < pageSize {
			break
		}
	}
	return records, nil
}
