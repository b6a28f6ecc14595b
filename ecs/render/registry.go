package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/physbox/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	mu     sync.Mutex
	images = map[string]*ebiten.Image{}
)

// RegisterImage caches an image under a key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	mu.Lock()
	images[key] = img
	mu.Unlock()
}

// GetImage returns a cached image or nil.
func GetImage(key string) *ebiten.Image {
	mu.Lock()
	defer mu.Unlock()
	return images[key]
}

// LoadImage loads an image from the assets directory and caches it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	tried := []string{key, filepath.Join("assets", key), filepath.Base(key)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			continue
		}
		img := ebiten.NewImageFromImage(im)
		RegisterImage(key, img)
		return img, nil
	}
	return nil, fmt.Errorf("failed to load image %s", key)
}

// Placeholder returns a generated stand-in sprite for a kind, sized to its
// collision shape, for when no art is present on disk.
func Placeholder(kind string, w, h float64) *ebiten.Image {
	key := fmt.Sprintf("placeholder/%s/%.0fx%.0f", kind, w, h)
	if img := GetImage(key); img != nil {
		return img
	}

	iw, ih := int(w), int(h)
	if iw < 2 {
		iw = 2
	}
	if ih < 2 {
		ih = 2
	}
	img := ebiten.NewImage(iw, ih)

	clr := colornames.Lightgray
	switch kind {
	case component.KindPlayer:
		clr = colornames.Crimson
	case component.KindBall:
		clr = colornames.Skyblue
	case component.KindBox:
		clr = colornames.Burlywood
	case component.KindBouncer:
		clr = colornames.Orchid
	case component.KindCoin:
		clr = colornames.Gold
	}

	if kind == component.KindBox {
		img.Fill(clr)
	} else {
		cx := float32(iw) / 2
		cy := float32(ih) / 2
		r := cx
		if cy < r {
			r = cy
		}
		vector.DrawFilledCircle(img, cx, cy, r, clr, true)
		// orientation tick so spin is visible
		vector.StrokeLine(img, cx, cy, float32(iw), cy, 1, colornames.Black, true)
	}

	RegisterImage(key, img)
	return img
}
