package sync

import (
	"encoding/json"
	"net/url"
	"sort"
)

// ListCategories returns the remote's non-empty categories sorted by name.
// The server is asked to hide empty categories and sort by name, then both
// are enforced client-side as well; the server contract is not guaranteed
// across remote versions.
func (c *Client) ListCategories() ([]RemoteCategory, ErrorSet) {
	q := url.Values{}
	q.Set("hide_empty", "true")
	q.Set("orderby", "name")
	q.Set("order", "asc")

	raw, errs := c.collectPages(c.cfg.CategoriesEndpoint, q, DefaultPageSize, DefaultPageCap)
	if !errs.Empty() {
		return nil, errs
	}

	cats := make([]RemoteCategory, 0, len(raw))
	for _, r := range raw {
		var cat RemoteCategory
		if err := json.Unmarshal(r, &cat); err != nil || cat.ID == 0 {
			continue
		}
		if cat.Count <= 0 {
			continue
		}
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}
