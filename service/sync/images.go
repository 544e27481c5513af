package sync

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"woosync.GO/model/entity/catalog"
)

const (
	imageTimeout      = 25 * time.Second
	fallbackUserAgent = "Mozilla/5.0 (WooSync Product Sync)"
	fallbackAccept    = "image/*,*/*;q=0.8"
)

// AttachmentStore registers downloaded files as managed attachments and
// mutates their alt text.
type AttachmentStore interface {
	CreateFromFile(tmpPath, fileName string, ownerID uint) (uint, error)
	SetAlt(id uint, alt string) error
	// DeleteExcept removes the owner's attachments whose ids are not in
	// keep, media files included.
	DeleteExcept(ownerID uint, keep []uint) error
}

// ImagePipeline downloads remote images and materializes them as managed
// attachments. A primary direct download is retried once through a
// fallback client with TLS verification disabled and a browser-like
// identity; some image hosts reject unadorned clients or carry broken
// certificate chains.
type ImagePipeline struct {
	store    AttachmentStore
	primary  *http.Client
	fallback *http.Client
	tmpDir   string
}

func NewImagePipeline(store AttachmentStore) *ImagePipeline {
	fallback := newHTTPClient(imageTimeout)
	fallback.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &ImagePipeline{
		store:    store,
		primary:  newHTTPClient(imageTimeout),
		fallback: fallback,
		tmpDir:   os.TempDir(),
	}
}

// Ingest downloads one image and registers it as an attachment owned by
// productID. On failure the error message is a named reason, never a
// generic blob.
func (p *ImagePipeline) Ingest(srcURL string, productID uint) (uint, error) {
	if srcURL == "" || productID == 0 {
		return 0, fmt.Errorf("bad_url_or_product")
	}

	tmp, err := p.download(p.primary, srcURL, false)
	if err != nil {
		// Fallback reasons are the ones reported; the primary attempt's
		// cause is superseded by the relaxed retry.
		tmp, err = p.download(p.fallback, srcURL, true)
		if err != nil {
			return 0, err
		}
	}
	defer os.Remove(tmp)

	attID, err := p.store.CreateFromFile(tmp, imageFileName(srcURL), productID)
	if err != nil {
		return 0, fmt.Errorf("attachment_register_failed: %v", err)
	}
	return attID, nil
}

func (p *ImagePipeline) download(client *http.Client, srcURL string, relaxed bool) (string, error) {
	req, err := http.NewRequest(http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("image_download_failed: %v", err)
	}
	if relaxed {
		req.Header.Set("User-Agent", fallbackUserAgent)
		req.Header.Set("Accept", fallbackAccept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image_download_failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image_http_%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("image_download_failed: %v", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("image_empty_body")
	}

	f, err := os.CreateTemp(p.tmpDir, "woosync-img-*")
	if err != nil {
		return "", fmt.Errorf("tempfile_failed")
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("temp_write_failed")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("temp_write_failed")
	}
	return f.Name(), nil
}

// ApplyImages ingests a product's remote image list, every image attempted
// independently. The first success becomes the featured image, later ones
// the gallery, in remote order. Alt text is the remote image's alt, else
// the product name; an alt-write failure never fails the pipeline.
// Returned strings are the per-image failure reasons.
//
// On a re-run the new set replaces the product's previous attachments;
// when every download fails the previous set is kept, so a flaky remote
// never strips a product bare.
func (p *ImagePipeline) ApplyImages(prod *catalog.Product, remote *RemoteProduct) []string {
	var failures []string
	var attIDs []uint

	for i, img := range remote.Images {
		if img.Src == "" {
			continue
		}
		attID, err := p.Ingest(img.Src, prod.ID)
		if err != nil {
			failures = append(failures, fmt.Sprintf("image #%d: %v", i+1, err))
			continue
		}
		attIDs = append(attIDs, attID)

		alt := img.Alt
		if alt == "" {
			alt = remote.Name
		}
		_ = p.store.SetAlt(attID, alt)
	}

	if len(attIDs) == 0 {
		return failures
	}
	if err := p.store.DeleteExcept(prod.ID, attIDs); err != nil {
		failures = append(failures, fmt.Sprintf("attachment_cleanup_failed: %v", err))
	}
	prod.FeaturedImageID = &attIDs[0]
	prod.GalleryImageIDs = nil
	if len(attIDs) > 1 {
		if gallery, err := json.Marshal(attIDs[1:]); err == nil {
			prod.GalleryImageIDs = gallery
		}
	}
	return failures
}

func imageFileName(srcURL string) string {
	u, err := url.Parse(srcURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "woosync-image.jpg"
	}
	return path.Base(u.Path)
}
