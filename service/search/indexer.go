package search

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	catalogEntity "woosync.GO/model/entity/catalog"
)

var (
	indexerInstance *Indexer
	indexerOnce     sync.Once
)

// GetIndexer returns the singleton product indexer. The indexer is a
// no-op unless ELASTICSEARCH_HOST is set.
func GetIndexer() *Indexer {
	indexerOnce.Do(func() {
		indexerInstance = NewIndexer()
	})
	return indexerInstance
}

// Indexer pushes synced products into an Elasticsearch index so a
// storefront can search them. Indexing is strictly best-effort: a sync
// never fails because the index write did.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer() *Indexer {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "woosync_catalog_product"
	}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &Indexer{index: index}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		log.Printf("search: elasticsearch client init failed, indexing disabled: %v", err)
		return &Indexer{index: index}
	}
	return &Indexer{client: client, index: index}
}

// IndexProduct writes one product document keyed by local id.
func (s *Indexer) IndexProduct(p *catalogEntity.Product) {
	if s == nil || s.client == nil || p == nil || p.ID == 0 {
		return
	}

	doc := map[string]interface{}{
		"id":                p.ID,
		"name":              p.Name,
		"sku":               p.SKU,
		"slug":              p.Slug,
		"status":            p.Status,
		"description":       p.Description,
		"short_description": p.ShortDescription,
	}
	if p.CategoryID != nil {
		doc["category_id"] = *p.CategoryID
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		log.Printf("search: index product %d failed: %v", p.ID, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Printf("search: index product %d: %s", p.ID, res.String())
	}
}
