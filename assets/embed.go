package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed sprites/*.png
var assetsFS embed.FS

// LoadFile reads an asset by assets-relative path, preferring a copy under
// dir on disk when dir is set.
func LoadFile(dir, path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if dir != "" {
		if b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

// DecodeImage decodes an asset without creating a GPU image.
func DecodeImage(dir, path string) (image.Image, error) {
	b, err := LoadFile(dir, path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", path, err)
	}
	return img, nil
}

// Textures loads sprite sheets once and hands out the cached image on
// later requests.
type Textures struct {
	// Dir is checked before the embedded sprites.
	Dir string

	mu    sync.Mutex
	cache map[string]*ebiten.Image
}

func NewTextures(dir string) *Textures {
	return &Textures{Dir: dir, cache: make(map[string]*ebiten.Image)}
}

func (t *Textures) Texture(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	t.mu.Lock()
	defer t.mu.Unlock()
	if img, ok := t.cache[clean]; ok {
		return img, nil
	}
	src, err := DecodeImage(t.Dir, clean)
	if err != nil {
		return nil, fmt.Errorf("assets: texture %q: %w", path, err)
	}
	img := ebiten.NewImageFromImage(src)
	if t.cache == nil {
		t.cache = make(map[string]*ebiten.Image)
	}
	t.cache[clean] = img
	return img, nil
}

// Forget drops a cached texture so the next request reads it again.
func (t *Textures) Forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cache, cleanAssetPath(path))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
