package catalog

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	catalogEntity "woosync.GO/model/entity/catalog"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

type AttachmentRepository struct {
	db       *gorm.DB
	mediaDir string
}

func NewAttachmentRepository(db *gorm.DB, mediaDir string) *AttachmentRepository {
	return &AttachmentRepository{db: db, mediaDir: mediaDir}
}

// CreateFromFile registers a downloaded temp file as a managed attachment
// owned by ownerID: the image is decode-validated, copied into the media
// directory, and thumbnailed. The temp file is left for the caller to
// remove.
func (r *AttachmentRepository) CreateFromFile(tmpPath, fileName string, ownerID uint) (uint, error) {
	if ownerID == 0 {
		return 0, fmt.Errorf("attachment needs an owning product")
	}
	if fileName == "" {
		fileName = "woosync-image.jpg"
	}

	img, mime, err := decodeImageFile(tmpPath, fileName)
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(r.mediaDir, 0o755); err != nil {
		return 0, fmt.Errorf("media dir: %w", err)
	}
	destName := fmt.Sprintf("%d-%d-%s", ownerID, time.Now().UnixNano(), sanitizeFileName(fileName))
	destPath := filepath.Join(r.mediaDir, destName)
	size, err := copyFile(tmpPath, destPath)
	if err != nil {
		return 0, fmt.Errorf("store media file: %w", err)
	}

	// Thumbnail is best-effort; a product without one still renders.
	thumbPath := destPath + "-thumb.jpg"
	thumb := imaging.Thumbnail(img, 150, 150, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		thumbPath = ""
	}

	att := catalogEntity.Attachment{
		ProductID: ownerID,
		FileName:  fileName,
		FilePath:  destPath,
		ThumbPath: thumbPath,
		MimeType:  mime,
		SizeBytes: size,
	}
	if err := r.db.Create(&att).Error; err != nil {
		os.Remove(destPath)
		if thumbPath != "" {
			os.Remove(thumbPath)
		}
		return 0, err
	}
	return att.ID, nil
}

// SetAlt mutates an attachment's alt text independently of its owner.
func (r *AttachmentRepository) SetAlt(id uint, alt string) error {
	return r.db.Model(&catalogEntity.Attachment{}).Where("id = ?", id).Update("alt", alt).Error
}

// DeleteExcept removes the product's attachments whose ids are not in
// keep, media files included. A re-sync calls this after registering the
// replacement set so old rows and files do not pile up.
func (r *AttachmentRepository) DeleteExcept(ownerID uint, keep []uint) error {
	q := r.db.Where("product_id = ?", ownerID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	var atts []catalogEntity.Attachment
	if err := q.Find(&atts).Error; err != nil {
		return err
	}
	for _, att := range atts {
		if err := r.db.Delete(&catalogEntity.Attachment{}, att.ID).Error; err != nil {
			return err
		}
		os.Remove(att.FilePath)
		if att.ThumbPath != "" {
			os.Remove(att.ThumbPath)
		}
	}
	return nil
}

func (r *AttachmentRepository) FindByID(id uint) (*catalogEntity.Attachment, error) {
	var att catalogEntity.Attachment
	if err := r.db.First(&att, id).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *AttachmentRepository) FindByProduct(productID uint) ([]catalogEntity.Attachment, error) {
	var atts []catalogEntity.Attachment
	err := r.db.Where("product_id = ?", productID).Order("id asc").Find(&atts).Error
	return atts, err
}

func decodeImageFile(path, fileName string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fileName))
	mime, ok := mimeByExt[ext]
	if !ok {
		mime = "image/jpeg"
	}

	// imaging has no webp support; chai2010/webp covers it.
	if ext == ".webp" {
		img, err := webp.Decode(f)
		return img, mime, err
	}
	img, err := imaging.Decode(f)
	return img, mime, err
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return 0, err
	}
	return n, nil
}
