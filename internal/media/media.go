// Package media turns client supplied image references into stored references.
//
// Clients send either an http(s) URL, kept as is, or a base64 data URI which is decoded,
// checked to be a real image, resized for its use and written under the upload directory.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"golang.org/x/image/draw"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const (
	PublicPrefix = "/uploads/"
	MaxImageSize = 4 << 20
	MaxDimension = 4096
	JPEGQuality  = 70
)

// Size is the output box for a prefix. A zero Height keeps the aspect ratio at Width,
// otherwise the image is scaled to cover the box and cropped to the centre.
type Size struct {
	Width  int
	Height int
}

var Sizes = map[string]Size{
	"avatar":    {Width: 256, Height: 256},
	"idea":      {Width: 600, Height: 600},
	"community": {Width: 800},
}

var ErrorInvalidImage = errors.New("invalid image")

var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

type Config interface {
	DataDirectory() string
}

type Store struct {
	dir string
}

func New(config Config) (*Store, error) {
	dir := config.DataDirectory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save returns the reference to persist for raw, or nil when raw is empty.
func (s *Store) Save(prefix, raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrorInvalidImage, err)
		}
		return &raw, nil
	}

	data, err := decodeDataURI(raw)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidImage, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrorInvalidImage, cfg.Width, cfg.Height, MaxDimension)
	}
	ext, ok := extensions[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %s", ErrorInvalidImage, format)
	}

	if size, ok := Sizes[prefix]; ok {
		if data, err = resize(data, size); err != nil {
			return nil, err
		}
		ext = extensions["jpeg"]
	}

	name := model.FileName(prefix, ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("writing image: %w", err)
	}

	ref := PublicPrefix + name
	return &ref, nil
}

// Remove deletes a file written by Save. URLs and nil references are ignored.
func (s *Store) Remove(ref *string) {
	if ref == nil || !strings.HasPrefix(*ref, PublicPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(*ref, PublicPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("removing upload %s: %v", name, err)
	}
}

func resize(data []byte, size Size) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidImage, err)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrorInvalidImage)
	}

	width, height := size.Width, size.Height
	crop := bounds
	if height == 0 {
		height = max(1, h*width/w)
	} else if w*height > h*width {
		// wider than the box
		cw := h * width / height
		x := bounds.Min.X + (w-cw)/2
		crop = image.Rect(x, bounds.Min.Y, x+cw, bounds.Max.Y)
	} else {
		ch := w * height / width
		y := bounds.Min.Y + (h-ch)/2
		crop = image.Rect(bounds.Min.X, y, bounds.Max.X, y+ch)
	}

	// jpeg has no alpha channel
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeDataURI(raw string) ([]byte, error) {
	if !strings.HasPrefix(raw, "data:image/") {
		return nil, fmt.Errorf("%w: expected a data:image URI or an http(s) URL", ErrorInvalidImage)
	}
	comma := strings.IndexByte(raw, ',')
	if comma < 0 || !strings.HasSuffix(raw[:comma], ";base64") {
		return nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrorInvalidImage)
	}
	payload := raw[comma+1:]
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrorInvalidImage, MaxImageSize)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidImage, err)
	}
	return data, nil
}
