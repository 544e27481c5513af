package sync

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"woosync.GO/model/entity/catalog"
)

type memProductStore struct {
	nextID   uint
	products map[uint]*catalog.Product
	links    map[uint64]uint
	failSave bool
}

func newMemProductStore() *memProductStore {
	return &memProductStore{
		products: map[uint]*catalog.Product{},
		links:    map[uint64]uint{},
	}
}

func (s *memProductStore) FindByRemoteID(remoteID uint64) (*catalog.Product, error) {
	pid, ok := s.links[remoteID]
	if !ok {
		return nil, nil
	}
	p, ok := s.products[pid]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) Save(p *catalog.Product) error {
	if s.failSave {
		return errors.New("db down")
	}
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) LinkRemoteID(productID uint, remoteID uint64) error {
	s.links[remoteID] = productID
	return nil
}

func (s *memProductStore) EnsureUniqueSlug(candidate string, productID uint) (string, error) {
	return candidate, nil
}

type memCategoryStore struct {
	existing map[uint]bool
}

func (s *memCategoryStore) Exists(id uint) (bool, error) {
	return s.existing[id], nil
}

type countingIndexer struct {
	indexed []uint
}

func (ix *countingIndexer) IndexProduct(p *catalog.Product) {
	ix.indexed = append(ix.indexed, p.ID)
}

// remoteHost serves product 501 with one dead and one live image, both
// hosted on the same server, and 404 for every other product id.
func remoteHost() *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == DefaultProductsEndpoint+"/501":
			fmt.Fprintf(w, `{
				"id":501,"name":"Blue Widget","sku":"BW-1","slug":"blue-widget",
				"description":"A widget, but blue.","short_description":"Blue.",
				"images":[{"src":"%s/missing/a.jpg"},{"src":"%s/open/front.jpg","alt":"front"}],
				"attributes":[{"name":"Color","options":["Red","Blue"],"visible":true,"variation":false}],
				"categories":[{"id":12,"name":"Widgets"}]
			}`, srv.URL, srv.URL)
		case strings.HasPrefix(r.URL.Path, "/open/"):
			w.Write([]byte("image-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return srv
}

func testReconciler(srvURL string, products *memProductStore, cats *memCategoryStore, atts *fakeAttachmentStore) *Reconciler {
	return NewReconciler(
		testClient(srvURL),
		products,
		cats,
		NewImagePipeline(atts),
	)
}

func TestReconcileImportsNewProduct(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	products := newMemProductStore()
	cats := &memCategoryStore{existing: map[uint]bool{7: true}}
	ix := &countingIndexer{}
	r := testReconciler(srv.URL, products, cats, newFakeAttachmentStore()).WithIndexer(ix)

	catID := uint(7)
	res := r.Reconcile([]uint64{501}, &catID)

	if !res.Success {
		t.Fatalf("success=false, errors=%v", res.Errors)
	}
	if res.Imported != 1 || res.Updated != 0 {
		t.Fatalf("imported=%d updated=%d", res.Imported, res.Updated)
	}

	pid, ok := products.links[501]
	if !ok {
		t.Fatal("remote id 501 not mapped")
	}
	p := products.products[pid]
	if p.Name != "Blue Widget" || p.SKU != "BW-1" || p.Status != "publish" {
		t.Fatalf("scalars: %+v", p)
	}
	if p.Slug != "blue-widget" {
		t.Fatalf("slug %q", p.Slug)
	}
	if p.CategoryID == nil || *p.CategoryID != 7 {
		t.Fatalf("category: %v", p.CategoryID)
	}
	if p.FeaturedImageID == nil {
		t.Fatal("featured image not set")
	}
	if len(p.Attributes) == 0 {
		t.Fatal("attributes not persisted")
	}

	// The dead image is tracked per product, not folded into Errors.
	if len(res.ImageErrors[501]) != 1 {
		t.Fatalf("image errors: %v", res.ImageErrors)
	}
	if !res.Errors.Empty() {
		t.Fatalf("image failure leaked into errors: %v", res.Errors)
	}

	if len(ix.indexed) != 1 || ix.indexed[0] != pid {
		t.Fatalf("indexed %v", ix.indexed)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	products := newMemProductStore()
	atts := newFakeAttachmentStore()
	r := testReconciler(srv.URL, products, &memCategoryStore{}, atts)

	first := r.Reconcile([]uint64{501}, nil)
	second := r.Reconcile([]uint64{501}, nil)

	if first.Imported != 1 || first.Updated != 0 {
		t.Fatalf("first run: %+v", first)
	}
	if second.Imported != 0 || second.Updated != 1 {
		t.Fatalf("second run: %+v", second)
	}
	if len(products.products) != 1 {
		t.Fatalf("duplicate product created: %d rows", len(products.products))
	}

	// The rerun replaces the image set instead of stacking a second copy.
	pid := products.links[501]
	if n := atts.countFor(pid); n != 1 {
		t.Fatalf("%d attachments after rerun, want 1", n)
	}
	p := products.products[pid]
	if p.FeaturedImageID == nil || *p.FeaturedImageID != 2 {
		t.Fatalf("featured not repointed at the fresh attachment: %v", p.FeaturedImageID)
	}
}

func TestReconcileSkipsUnknownCategory(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	products := newMemProductStore()
	r := testReconciler(srv.URL, products, &memCategoryStore{}, newFakeAttachmentStore())

	catID := uint(99)
	res := r.Reconcile([]uint64{501}, &catID)
	if !res.Success {
		t.Fatalf("errors: %v", res.Errors)
	}
	p := products.products[products.links[501]]
	if p.CategoryID != nil {
		t.Fatalf("nonexistent category assigned: %v", *p.CategoryID)
	}
}

func TestReconcileAccumulatesPerIDFailures(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	products := newMemProductStore()
	r := testReconciler(srv.URL, products, &memCategoryStore{}, newFakeAttachmentStore())

	res := r.Reconcile([]uint64{501, 999}, nil)

	if res.Success {
		t.Fatal("run with a failed id reported success")
	}
	if res.Imported != 1 {
		t.Fatalf("the healthy id was not imported: %+v", res)
	}
	if !res.Errors.Has(ErrSiteUnreachable) || !res.Errors.Has(ErrAuthFailure) {
		t.Fatalf("errors: %v", res.Errors)
	}
}

func TestReconcileNoUsableIDs(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	r := testReconciler(srv.URL, newMemProductStore(), &memCategoryStore{}, newFakeAttachmentStore())

	for _, ids := range [][]uint64{nil, {}, {0, 0}} {
		res := r.Reconcile(ids, nil)
		if res.Success {
			t.Fatalf("ids %v reported success", ids)
		}
		if !res.Errors.Has(ErrTransferFailure) {
			t.Fatalf("ids %v: errors %v", ids, res.Errors)
		}
	}
}

func TestReconcileSaveFailure(t *testing.T) {
	srv := remoteHost()
	defer srv.Close()

	products := newMemProductStore()
	products.failSave = true
	r := testReconciler(srv.URL, products, &memCategoryStore{}, newFakeAttachmentStore())

	res := r.Reconcile([]uint64{501}, nil)
	if res.Success || !res.Errors.Has(ErrTransferFailure) {
		t.Fatalf("got %+v", res)
	}
}
