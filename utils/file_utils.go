package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// MaxImageSize is the largest accepted upload (5MB)
	MaxImageSize = 5 * 1024 * 1024
	// maxImageEdge bounds the longest side of stored images
	maxImageEdge = 1600
)

var (
	ErrFileTooLarge     = errors.New("file exceeds the 5MB limit")
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are allowed")
	ErrCorruptImage     = errors.New("file is not a readable image")
)

var (
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
	}
)

// FileMeta describes a file handed to a FileStorage
type FileMeta struct {
	Filename    string
	ContentType string
	SubDir      string
}

// FileStorage persists uploaded files and returns a web-servable path
type FileStorage interface {
	Save(data []byte, meta FileMeta) (string, error)
	Remove(path string) error
}

// LocalStorage writes files under a directory on disk. Returned paths are
// prefixed with the public URL prefix, e.g. "Uploads/providers/x.jpg".
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) *LocalStorage {
	return &LocalStorage{root: root, urlPrefix: strings.Trim(urlPrefix, "/")}
}

// Init creates the storage root and the given subdirectories
func (s *LocalStorage) Init(subDirs ...string) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %v", err)
	}
	for _, dir := range subDirs {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

func (s *LocalStorage) Save(data []byte, meta FileMeta) (string, error) {
	ext := strings.ToLower(filepath.Ext(meta.Filename))
	name := uuid.NewString() + ext
	subDir := cleanSubDir(meta.SubDir)

	fullPath := filepath.Join(s.root, subDir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %v", fullPath, err)
	}

	return NormalizePath(filepath.Join(s.urlPrefix, subDir, name)), nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (s *LocalStorage) Remove(path string) error {
	rel := strings.TrimPrefix(NormalizePath(path), s.urlPrefix+"/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("refusing to remove %q", path)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cleanSubDir(dir string) string {
	dir = filepath.Clean("/" + dir)
	return strings.TrimPrefix(dir, string(filepath.Separator))
}

// NormalizePath turns backslashes into forward slashes and drops a leading slash
func NormalizePath(p string) string {
	return strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
}

// ValidateImageHeader checks size, extension and declared content type of an upload
func ValidateImageHeader(file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if !allowedImageExts[ext] || !allowedImageTypes[contentType] {
		return ErrUnsupportedImage
	}
	return nil
}

// ReadImage validates and loads an uploaded image. The pixels are decoded
// to make sure the file really is an image, and oversized images are
// scaled down to fit maxImageEdge.
func ReadImage(file *multipart.FileHeader) ([]byte, error) {
	if err := ValidateImageHeader(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageSize {
		return nil, ErrFileTooLarge
	}

	return PrepareImage(data, file.Filename)
}

// PrepareImage decodes data and re-encodes it when it must be resized
func PrepareImage(data []byte, filename string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrCorruptImage
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageEdge && bounds.Dy() <= maxImageEdge {
		return data, nil
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	resized := imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}
	return buf.Bytes(), nil
}
