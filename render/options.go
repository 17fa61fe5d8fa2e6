package render

// Option is a functional option for configuring a Renderer via NewRenderer.
type Option func(*config)

type config struct {
	jpegQuality int
	fonts       map[string][]byte
	defaultFont string
}

// WithJPEGQuality sets the quality (1-100) used when encoding jpg output.
// The default is 95.
func WithJPEGQuality(q int) Option {
	return func(c *config) {
		c.jpegQuality = q
	}
}

// WithFont registers an additional font family from raw TTF/OTF data,
// alongside the embedded Go fonts.
func WithFont(family string, ttf []byte) Option {
	return func(c *config) {
		c.fonts[family] = ttf
	}
}

// WithDefaultFont selects the fallback family used when a placement names
// an unknown font. The family must be embedded or registered via WithFont.
func WithDefaultFont(family string) Option {
	return func(c *config) {
		c.defaultFont = family
	}
}
