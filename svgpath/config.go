package svgpath

import (
	"errors"
	"fmt"

	"github.com/dirtybirdnj/gellyscape/model"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid transform config")

// Config controls how PDF user space maps to output pixels.
type Config struct {
	// Page size in PDF points.
	PDFWidth  float64
	PDFHeight float64

	// Output size. Zero means the PDF size.
	SVGWidth  float64
	SVGHeight float64

	// CropBox, when set, replaces the page as the visible area.
	CropBox *model.BBox

	// Precision is the number of decimal places in emitted coordinates.
	Precision int

	FlipY          bool
	ApplyTransform bool
}

// DefaultConfig returns a US Letter page mapped one to one, flipped to a
// top-left origin, with path transforms applied.
func DefaultConfig() Config {
	return Config{
		PDFWidth:       612,
		PDFHeight:      792,
		Precision:      3,
		FlipY:          true,
		ApplyTransform: true,
	}
}

// Option configures a Transformer.
type Option func(*Config)

// WithPageSize sets the PDF page size in points.
func WithPageSize(width, height float64) Option {
	return func(c *Config) {
		c.PDFWidth = width
		c.PDFHeight = height
	}
}

// WithOutputSize sets the output size.
func WithOutputSize(width, height float64) Option {
	return func(c *Config) {
		c.SVGWidth = width
		c.SVGHeight = height
	}
}

// WithCropBox restricts the visible area to box.
func WithCropBox(box model.BBox) Option {
	return func(c *Config) {
		c.CropBox = &box
	}
}

// WithPrecision sets the number of decimal places.
func WithPrecision(n int) Option {
	return func(c *Config) {
		c.Precision = n
	}
}

// WithFlipY enables or disables flipping to a top-left origin.
func WithFlipY(flip bool) Option {
	return func(c *Config) {
		c.FlipY = flip
	}
}

// WithApplyTransform enables or disables applying each path's CTM.
func WithApplyTransform(apply bool) Option {
	return func(c *Config) {
		c.ApplyTransform = apply
	}
}

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func (c Config) withDefaults() Config {
	if c.SVGWidth == 0 {
		c.SVGWidth = c.PDFWidth
	}
	if c.SVGHeight == 0 {
		c.SVGHeight = c.PDFHeight
	}
	return c
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.PDFWidth <= 0 || c.PDFHeight <= 0:
		return fmt.Errorf("%w: page size %vx%v must be positive", ErrInvalidConfig, c.PDFWidth, c.PDFHeight)
	case c.SVGWidth <= 0 || c.SVGHeight <= 0:
		return fmt.Errorf("%w: output size %vx%v must be positive", ErrInvalidConfig, c.SVGWidth, c.SVGHeight)
	case c.Precision < 0:
		return fmt.Errorf("%w: negative precision %d", ErrInvalidConfig, c.Precision)
	case c.CropBox != nil && !c.CropBox.IsValid():
		return fmt.Errorf("%w: crop box %vx%v must have positive size", ErrInvalidConfig, c.CropBox.Width, c.CropBox.Height)
	}
	return nil
}
