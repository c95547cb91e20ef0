package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/jokafor/portfolio/config"
	"github.com/jokafor/portfolio/util/common"

	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type UploadService struct{}

// SaveImage stores an uploaded image under the upload folder and returns the
// stored name. The client filename is sanitized and prefixed with a UUID so
// stored names can never collide or escape the folder.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", common.NewErrorf("unsupported image type %q, want jpg, jpeg, png or gif", ext)
	}

	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	if base == "" {
		base = "image"
	}
	stored := uuid.NewString() + "-" + base + ext

	uploadDir := config.GetUploadFolder()
	if err := os.MkdirAll(uploadDir, 0o750); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(uploadDir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return stored, nil
}

// sanitizeFilename keeps letters, digits, dot, dash and underscore and drops
// everything else, including path separators and leading dots.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
