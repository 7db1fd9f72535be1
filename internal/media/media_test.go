package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func TestSavePostImage(t *testing.T) {
	root := t.TempDir()
	storage, err := New(root)
	require.NoError(t, err)

	content := pngBytes(t, 8, 8)
	rel, err := storage.SavePostImage(uploadHeader(t, "cover.png", content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, PostSubdir+"/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, content, data)

	// A thumbnail is written alongside the original.
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(ThumbnailPath(rel))))
	assert.NoError(t, err)
}

func TestSavePostImageScalesLargeThumbnail(t *testing.T) {
	root := t.TempDir()
	storage, err := New(root)
	require.NoError(t, err)

	rel, err := storage.SavePostImage(uploadHeader(t, "big.png", pngBytes(t, 1024, 512)))
	require.NoError(t, err)

	thumb, err := os.Open(filepath.Join(root, filepath.FromSlash(ThumbnailPath(rel))))
	require.NoError(t, err)
	defer thumb.Close()

	cfg, _, err := image.DecodeConfig(thumb)
	require.NoError(t, err)
	assert.Equal(t, thumbMaxSize, cfg.Width)
	assert.Equal(t, thumbMaxSize/2, cfg.Height)
}

func TestSavePostImageRejectsUnknownExtension(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SavePostImage(uploadHeader(t, "script.exe", []byte("nope")))
	assert.Error(t, err)
}

func TestSavePostImageRejectsNonImageContent(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SavePostImage(uploadHeader(t, "fake.png", []byte("not an image")))
	assert.Error(t, err)
}

func TestThumbnailPath(t *testing.T) {
	assert.Equal(t, "posts/thumbs/abc.webp", ThumbnailPath("posts/abc.png"))
	assert.Equal(t, "", ThumbnailPath(""))
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	storage, err := New(root)
	require.NoError(t, err)

	rel, err := storage.SavePostImage(uploadHeader(t, "pic.png", pngBytes(t, 4, 4)))
	require.NoError(t, err)

	assert.NoError(t, storage.Remove(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(ThumbnailPath(rel))))
	assert.True(t, os.IsNotExist(err))

	// second removal of a missing file is silent
	assert.NoError(t, storage.Remove(rel))
	assert.NoError(t, storage.Remove(""))
}
