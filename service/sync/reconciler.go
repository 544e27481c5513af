package sync

import (
	"encoding/json"

	"woosync.GO/model/entity/catalog"
)

// ProductStore is the local catalog's persistence surface as the
// reconciler needs it.
type ProductStore interface {
	// FindByRemoteID resolves the external-id mapping; (nil, nil) when no
	// mapping exists.
	FindByRemoteID(remoteID uint64) (*catalog.Product, error)
	Save(p *catalog.Product) error
	LinkRemoteID(productID uint, remoteID uint64) error
	// EnsureUniqueSlug returns candidate made collision-free against every
	// product other than productID.
	EnsureUniqueSlug(candidate string, productID uint) (string, error)
}

// CategoryStore answers local-taxonomy existence checks.
type CategoryStore interface {
	Exists(id uint) (bool, error)
}

// Indexer receives saved products for secondary indexing; implementations
// must be best-effort and never block a sync on failure.
type Indexer interface {
	IndexProduct(p *catalog.Product)
}

// Reconciler materializes remote products into the local catalog,
// one external id at a time.
type Reconciler struct {
	client     *Client
	products   ProductStore
	categories CategoryStore
	images     *ImagePipeline
	indexer    Indexer
}

func NewReconciler(client *Client, products ProductStore, categories CategoryStore, images *ImagePipeline) *Reconciler {
	return &Reconciler{
		client:     client,
		products:   products,
		categories: categories,
		images:     images,
	}
}

// WithIndexer attaches an optional post-save indexer.
func (r *Reconciler) WithIndexer(ix Indexer) *Reconciler {
	r.indexer = ix
	return r
}

// TransferResult reports one reconciliation run. ImageErrors holds
// per-remote-id image failure reasons; they are tracked here but do not
// participate in Errors or Success.
type TransferResult struct {
	Imported    int
	Updated     int
	Errors      ErrorSet
	ImageErrors map[uint64][]string
	Success     bool
}

// Reconcile fetches every requested external id and upserts the matching
// local product. Ids are processed independently: an error accumulates
// into the result and the loop continues. A remote id with an existing
// mapping updates that product in place; one without a mapping creates
// exactly one product and records the mapping immediately after the first
// save, so a later partial failure stays discoverable on retry.
func (r *Reconciler) Reconcile(ids []uint64, categoryID *uint) *TransferResult {
	res := &TransferResult{ImageErrors: make(map[uint64][]string)}
	processed := 0

	for _, remoteID := range ids {
		if remoteID == 0 {
			continue
		}
		processed++

		remote, errs := r.client.FetchProduct(remoteID)
		if !errs.Empty() {
			res.Errors = res.Errors.Merge(errs)
			continue
		}

		prod, err := r.products.FindByRemoteID(remoteID)
		if err != nil {
			res.Errors = res.Errors.Add(ErrTransferFailure)
			continue
		}
		created := prod == nil
		if created {
			prod = &catalog.Product{}
		}

		r.applyScalars(prod, remote, categoryID)

		if err := r.products.Save(prod); err != nil {
			res.Errors = res.Errors.Add(ErrTransferFailure)
			continue
		}
		if err := r.products.LinkRemoteID(prod.ID, remoteID); err != nil {
			res.Errors = res.Errors.Add(ErrTransferFailure)
			continue
		}

		candidate := remote.Slug
		if candidate == "" {
			candidate = remote.Name
		}
		if slug, err := r.products.EnsureUniqueSlug(Slugify(candidate), prod.ID); err == nil {
			prod.Slug = slug
		}

		if imgFailures := r.images.ApplyImages(prod, remote); len(imgFailures) > 0 {
			res.ImageErrors[remoteID] = imgFailures
		}
		if attrs := MapAttributes(remote.Attributes); len(attrs) > 0 {
			if encoded, err := json.Marshal(attrs); err == nil {
				prod.Attributes = encoded
			}
		}

		if err := r.products.Save(prod); err != nil {
			res.Errors = res.Errors.Add(ErrTransferFailure)
			continue
		}

		if created {
			res.Imported++
		} else {
			res.Updated++
		}
		if r.indexer != nil {
			r.indexer.IndexProduct(prod)
		}
	}

	if processed == 0 {
		res.Errors = res.Errors.Add(ErrTransferFailure)
	}
	res.Errors = res.Errors.FilterKnown()
	res.Success = processed > 0 && res.Errors.Empty()
	return res
}

func (r *Reconciler) applyScalars(prod *catalog.Product, remote *RemoteProduct, categoryID *uint) {
	prod.Name = remote.Name
	prod.Description = remote.Description
	prod.ShortDescription = remote.ShortDescription
	if remote.SKU != "" {
		prod.SKU = remote.SKU
	}
	prod.Status = "publish"

	if categoryID != nil && *categoryID > 0 {
		if ok, err := r.categories.Exists(*categoryID); err == nil && ok {
			prod.CategoryID = categoryID
		}
	}
}
