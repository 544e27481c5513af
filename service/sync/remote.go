package sync

import (
	"encoding/json"
	"errors"
	"strings"
)

// Remote records are transient: decoded once at the boundary with defaults
// applied here, then handed to the reconciler. Nothing below is persisted.

type RemoteImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type RemoteAttribute struct {
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
}

type RemoteCategoryRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type RemoteProduct struct {
	ID               uint64              `json:"id"`
	Name             string              `json:"name"`
	SKU              string              `json:"sku"`
	Slug             string              `json:"slug"`
	Status           string              `json:"status"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Images           []RemoteImage       `json:"images"`
	Attributes       []RemoteAttribute   `json:"attributes"`
	Categories       []RemoteCategoryRef `json:"categories"`
}

type RemoteCategory struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ProductSummary is one listing row as surfaced to the caller: id, name,
// sku, status and the first image source.
type ProductSummary struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	SKU    string `json:"sku"`
	Status string `json:"status"`
	Image  string `json:"image"`
}

var errMalformedRecord = errors.New("sync: malformed remote record")

// decodeProduct deserializes one remote product object.
// A record without a positive id is malformed; an empty name defaults so
// downstream display never sees a blank.
func decodeProduct(raw []byte) (*RemoteProduct, error) {
	var p RemoteProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, errMalformedRecord
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = "Untitled product"
	}
	return &p, nil
}

func summarize(p *RemoteProduct) ProductSummary {
	img := ""
	if len(p.Images) > 0 {
		img = p.Images[0].Src
	}
	return ProductSummary{ID: p.ID, Name: p.Name, SKU: p.SKU, Status: p.Status, Image: img}
}
