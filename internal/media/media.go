// Package media stores uploaded image attachments under a configured
// root directory. Posts reference attachments by path relative to that
// root; serving the files is left to the static file handler. Every
// stored image gets a webp thumbnail alongside it for feed rendering.
package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/google/uuid"
)

// PostSubdir is where post attachments live below the media root.
const PostSubdir = "posts"

// ThumbSubdir is where generated thumbnails live below the media root.
const ThumbSubdir = "posts/thumbs"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Storage writes uploads below a single root directory.
type Storage struct {
	root string
}

// New creates the media root (and its subdirectories) if needed.
func New(root string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("media root is required")
	}
	for _, sub := range []string{PostSubdir, ThumbSubdir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media root: %w", err)
		}
	}
	return &Storage{root: root}, nil
}

// Root returns the storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// SavePostImage persists an uploaded image and returns its path relative
// to the media root. The upload must decode as an actual image; the
// stored name is random and only the extension is kept from the upload.
// A webp thumbnail is written next to the original.
func (s *Storage) SavePostImage(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("file is not a valid image: %w", err)
	}

	name := uuid.NewString()
	rel := filepath.Join(PostSubdir, name+ext)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	if err := s.writeThumbnail(name, img); err != nil {
		_ = os.Remove(filepath.Join(s.root, rel))
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// ThumbnailPath maps a stored attachment path to its thumbnail path.
// It returns an empty string when the post has no attachment.
func ThumbnailPath(rel string) string {
	if rel == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.ToSlash(filepath.Join(ThumbSubdir, base+".webp"))
}

// Remove deletes a stored file and its thumbnail by the file's relative
// path. Missing files are not an error.
func (s *Storage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	if err := removeIfExists(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil {
		return err
	}
	return removeIfExists(filepath.Join(s.root, filepath.FromSlash(ThumbnailPath(rel))))
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
