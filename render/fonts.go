package render

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSet resolves family names to opentype faces, caching parsed fonts and
// sized faces. A family that was never registered resolves to the default
// face, so a layout authored with fonts unavailable here still renders.
type FontSet struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	faces    map[faceKey]font.Face
	fallback string
}

type faceKey struct {
	family string
	size   float64
}

// NewFontSet creates a font set preloaded with the embedded Go fonts:
// "Go" (the default), "Go Bold", "Go Italic" and "Go Mono".
func NewFontSet() (*FontSet, error) {
	fs := &FontSet{
		fonts:    make(map[string]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
		fallback: "go",
	}
	embedded := map[string][]byte{
		"Go":        goregular.TTF,
		"Go Bold":   gobold.TTF,
		"Go Italic": goitalic.TTF,
		"Go Mono":   gomono.TTF,
	}
	for name, ttf := range embedded {
		if err := fs.Register(name, ttf); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// Register parses TTF/OTF data and makes it available under the given
// family name. Names are matched case-insensitively.
func (fs *FontSet) Register(family string, ttf []byte) error {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("render: parsing font %q: %w", family, err)
	}
	fs.mu.Lock()
	fs.fonts[normalizeFamily(family)] = f
	fs.mu.Unlock()
	return nil
}

// SetDefault selects the fallback family for unknown names. The family must
// already be registered.
func (fs *FontSet) SetDefault(family string) error {
	key := normalizeFamily(family)
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.fonts[key]; !ok {
		return fmt.Errorf("render: default font %q not registered", family)
	}
	fs.fallback = key
	return nil
}

// Face returns a sized face for the family, falling back to the default
// family when the name is unknown or empty.
func (fs *FontSet) Face(family string, size float64) (font.Face, error) {
	key := faceKey{family: normalizeFamily(family), size: size}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, ok := fs.fonts[key.family]
	if !ok {
		key.family = fs.fallback
		f = fs.fonts[key.family]
	}
	if face, ok := fs.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: face %q at %g: %w", key.family, size, err)
	}
	fs.faces[key] = face
	return face, nil
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
