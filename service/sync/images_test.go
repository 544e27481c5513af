package sync

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"woosync.GO/model/entity/catalog"
)

type fakeAttachmentStore struct {
	nextID     uint
	owners     map[uint]uint // attachment id -> owning product id
	alts       map[uint]string
	created    []string
	failCreate bool
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{
		owners: map[uint]uint{},
		alts:   map[uint]string{},
	}
}

func (s *fakeAttachmentStore) CreateFromFile(tmpPath, fileName string, ownerID uint) (uint, error) {
	if s.failCreate {
		return 0, fmt.Errorf("disk full")
	}
	s.nextID++
	s.owners[s.nextID] = ownerID
	s.created = append(s.created, fileName)
	return s.nextID, nil
}

func (s *fakeAttachmentStore) SetAlt(id uint, alt string) error {
	s.alts[id] = alt
	return nil
}

func (s *fakeAttachmentStore) DeleteExcept(ownerID uint, keep []uint) error {
	kept := make(map[uint]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for id, owner := range s.owners {
		if owner == ownerID && !kept[id] {
			delete(s.owners, id)
			delete(s.alts, id)
		}
	}
	return nil
}

func (s *fakeAttachmentStore) countFor(ownerID uint) int {
	n := 0
	for _, owner := range s.owners {
		if owner == ownerID {
			n++
		}
	}
	return n
}

// imageHost serves image bytes only to the fallback client's identity on
// /picky paths, unconditionally on /open paths, and 404 elsewhere.
func imageHost() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/picky/"):
			if r.Header.Get("User-Agent") != fallbackUserAgent {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Write([]byte("image-bytes"))
		case strings.HasPrefix(r.URL.Path, "/open/"):
			w.Write([]byte("image-bytes"))
		case strings.HasPrefix(r.URL.Path, "/empty/"):
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestIngestFallsBackWhenPrimaryRejected(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	store := newFakeAttachmentStore()
	p := NewImagePipeline(store)

	attID, err := p.Ingest(srv.URL+"/picky/photo.jpg", 7)
	if err != nil {
		t.Fatalf("fallback tier did not recover: %v", err)
	}
	if attID != 1 {
		t.Fatalf("attachment id %d", attID)
	}
	if len(store.created) != 1 || store.created[0] != "photo.jpg" {
		t.Fatalf("created %v", store.created)
	}
}

func TestIngestReportsFallbackReasonWhenBothTiersFail(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	p := NewImagePipeline(newFakeAttachmentStore())
	_, err := p.Ingest(srv.URL+"/missing/photo.jpg", 7)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Error() != "image_http_404" {
		t.Fatalf("reason %q", err.Error())
	}
}

func TestIngestRejectsEmptyBody(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	p := NewImagePipeline(newFakeAttachmentStore())
	_, err := p.Ingest(srv.URL+"/empty/photo.jpg", 7)
	if err == nil || err.Error() != "image_empty_body" {
		t.Fatalf("got %v", err)
	}
}

func TestIngestReportsRegisterFailure(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	store := newFakeAttachmentStore()
	store.failCreate = true
	p := NewImagePipeline(store)

	_, err := p.Ingest(srv.URL+"/open/photo.jpg", 7)
	if err == nil || !strings.HasPrefix(err.Error(), "attachment_register_failed") {
		t.Fatalf("got %v", err)
	}
}

func TestIngestValidatesInput(t *testing.T) {
	p := NewImagePipeline(newFakeAttachmentStore())
	if _, err := p.Ingest("", 7); err == nil {
		t.Fatal("empty url accepted")
	}
	if _, err := p.Ingest("https://img.example/x.jpg", 0); err == nil {
		t.Fatal("zero product accepted")
	}
}

func TestApplyImagesFeaturedGalleryAndFailures(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	store := newFakeAttachmentStore()
	p := NewImagePipeline(store)

	prod := &catalog.Product{}
	prod.ID = 7
	remote := &RemoteProduct{
		Name: "Blue Widget",
		Images: []RemoteImage{
			{Src: srv.URL + "/missing/a.jpg", Alt: "gone"},
			{Src: srv.URL + "/open/b.jpg", Alt: "front"},
			{Src: srv.URL + "/open/c.jpg"},
		},
	}

	failures := p.ApplyImages(prod, remote)
	if len(failures) != 1 || !strings.HasPrefix(failures[0], "image #1:") {
		t.Fatalf("failures %v", failures)
	}

	if prod.FeaturedImageID == nil || *prod.FeaturedImageID != 1 {
		t.Fatalf("featured image: %v", prod.FeaturedImageID)
	}
	if string(prod.GalleryImageIDs) != "[2]" {
		t.Fatalf("gallery: %s", prod.GalleryImageIDs)
	}

	// Explicit alt carries over; a missing alt falls back to the name.
	if store.alts[1] != "front" {
		t.Fatalf("alt 1: %q", store.alts[1])
	}
	if store.alts[2] != "Blue Widget" {
		t.Fatalf("alt 2: %q", store.alts[2])
	}
}

func TestApplyImagesReplacesPreviousSet(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	store := newFakeAttachmentStore()
	p := NewImagePipeline(store)

	prod := &catalog.Product{}
	prod.ID = 7
	remote := &RemoteProduct{
		Name:   "Blue Widget",
		Images: []RemoteImage{{Src: srv.URL + "/open/front.jpg"}},
	}

	if failures := p.ApplyImages(prod, remote); len(failures) != 0 {
		t.Fatalf("first run: %v", failures)
	}
	if failures := p.ApplyImages(prod, remote); len(failures) != 0 {
		t.Fatalf("second run: %v", failures)
	}

	if n := store.countFor(7); n != 1 {
		t.Fatalf("%d attachments after rerun, want 1", n)
	}
	if _, ok := store.owners[1]; ok {
		t.Fatal("first-run attachment not removed")
	}
	if prod.FeaturedImageID == nil || *prod.FeaturedImageID != 2 {
		t.Fatalf("featured: %v", prod.FeaturedImageID)
	}
	if prod.GalleryImageIDs != nil {
		t.Fatalf("gallery not cleared: %s", prod.GalleryImageIDs)
	}
}

func TestApplyImagesKeepsPreviousSetWhenAllFail(t *testing.T) {
	srv := imageHost()
	defer srv.Close()

	store := newFakeAttachmentStore()
	p := NewImagePipeline(store)

	prod := &catalog.Product{}
	prod.ID = 7

	good := &RemoteProduct{Name: "Blue Widget",
		Images: []RemoteImage{{Src: srv.URL + "/open/front.jpg"}}}
	if failures := p.ApplyImages(prod, good); len(failures) != 0 {
		t.Fatalf("first run: %v", failures)
	}

	bad := &RemoteProduct{Name: "Blue Widget",
		Images: []RemoteImage{{Src: srv.URL + "/missing/front.jpg"}}}
	failures := p.ApplyImages(prod, bad)
	if len(failures) != 1 {
		t.Fatalf("failures: %v", failures)
	}

	if n := store.countFor(7); n != 1 {
		t.Fatalf("%d attachments, previous set should survive", n)
	}
	if prod.FeaturedImageID == nil || *prod.FeaturedImageID != 1 {
		t.Fatalf("featured repointed: %v", prod.FeaturedImageID)
	}
}

func TestImageFileName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://img.example/a/b/photo.png", "photo.png"},
		{"https://img.example/", "woosync-image.jpg"},
		{"://bad", "woosync-image.jpg"},
	}
	for _, tc := range cases {
		if got := imageFileName(tc.in); got != tc.want {
			t.Errorf("imageFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
