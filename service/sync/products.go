package sync

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListProducts aggregates the remote product listing into summary rows.
// remoteCategoryID filters server-side when non-zero; it is the remote
// taxonomy's id, not a local one.
func (c *Client) ListProducts(remoteCategoryID uint64) ([]ProductSummary, ErrorSet) {
	q := url.Values{}
	if remoteCategoryID > 0 {
		q.Set("category", strconv.FormatUint(remoteCategoryID, 10))
	}

	raw, errs := c.collectPages(c.cfg.ProductsEndpoint, q, DefaultPageSize, DefaultPageCap)
	if !errs.Empty() {
		return nil, errs
	}

	out := make([]ProductSummary, 0, len(raw))
	for _, r := range raw {
		p, err := decodeProduct(r)
		if err != nil {
			continue
		}
		out = append(out, summarize(p))
	}
	return out, nil
}

// FetchProduct retrieves one full remote record by external id.
// A malformed payload classifies as an auth failure, the same signal the
// collector uses for a broken endpoint contract.
func (c *Client) FetchProduct(id uint64) (*RemoteProduct, ErrorSet) {
	if id == 0 {
		return nil, ErrorSet{ErrTransferFailure}
	}

	path := fmt.Sprintf("%s/%d", c.cfg.ProductsEndpoint, id)
	resp, err := c.Get(path, nil)
	if errs := Classify(resp, err); !errs.Empty() {
		return nil, errs
	}

	p, err := decodeProduct(resp.Body)
	if err != nil {
		return nil, ErrorSet{ErrAuthFailure}
	}
	return p, nil
}
