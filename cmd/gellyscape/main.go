// Command gellyscape prints the vector geometry of PDF pages.
//
// Usage:
//
//	gellyscape [options] file.pdf
//
// Paths are written in output coordinates as JSON, as bare path data, or
// as SVG-style markup. With -png each page is also rasterized.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dirtybirdnj/gellyscape"
	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/raster"
	"github.com/dirtybirdnj/gellyscape/svgpath"
)

type options struct {
	pages       []int
	format      string
	precision   int
	width       float64
	height      float64
	crop        bool
	noFlip      bool
	noTransform bool
	png         string
	verbose     bool
	input       string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gellyscape", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pages := fs.String("pages", "", "comma-separated page numbers (default all)")
	fs.StringVar(&opts.format, "format", "json", "output format: json, paths or markup")
	fs.IntVar(&opts.precision, "precision", 3, "decimal places in coordinates")
	fs.Float64Var(&opts.width, "width", 0, "output width (default page width)")
	fs.Float64Var(&opts.height, "height", 0, "output height (default page height)")
	fs.BoolVar(&opts.crop, "crop", false, "limit output to the crop box")
	fs.BoolVar(&opts.noFlip, "no-flip", false, "keep the PDF bottom-left origin")
	fs.BoolVar(&opts.noTransform, "no-transform", false, "ignore the current transformation matrix")
	fs.StringVar(&opts.png, "png", "", "write a PNG preview to this file")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gellyscape [options] file.pdf\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)

	switch opts.format {
	case "json", "paths", "markup":
	default:
		return opts, fmt.Errorf("unknown format %q", opts.format)
	}

	var err error
	if opts.pages, err = parsePages(*pages); err != nil {
		return opts, err
	}
	return opts, nil
}

// parsePages parses a list such as "1,3,5-7".
func parsePages(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(hi); err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func (o options) extractor() *gellyscape.Extractor {
	transform := []svgpath.Option{
		svgpath.WithPrecision(o.precision),
		svgpath.WithFlipY(!o.noFlip),
		svgpath.WithApplyTransform(!o.noTransform),
	}
	if o.width > 0 || o.height > 0 {
		transform = append(transform, svgpath.WithOutputSize(o.width, o.height))
	}

	ext := gellyscape.Open(o.input).Transform(transform...)
	if len(o.pages) > 0 {
		ext = ext.Pages(o.pages...)
	}
	if o.crop {
		ext = ext.UseCropBox()
	}
	return ext
}

func run(opts options, stdout io.Writer, logger *slog.Logger) error {
	pages, _, err := opts.extractor().Sink(diag.NewSlogSink(logger)).Extract()
	if err != nil {
		return err
	}
	for _, p := range pages {
		logger.Debug("page extracted",
			slog.Int("page", p.Number),
			slog.Int("operations", p.Operations),
			slog.Int("paths", len(p.Elements)),
			slog.Int("texts", len(p.TextElements)))
	}

	if err := write(stdout, opts.format, pages); err != nil {
		return err
	}
	if opts.png != "" {
		for _, p := range pages {
			name := pngName(opts.png, p.Number, len(pages))
			if err := writePNG(name, p); err != nil {
				return err
			}
			logger.Debug("wrote preview", slog.String("file", name))
		}
	}
	return nil
}

func write(w io.Writer, format string, pages []gellyscape.Page) error {
	switch format {
	case "paths":
		for _, p := range pages {
			fmt.Fprintf(w, "# page %d\n", p.Number)
			for _, el := range p.Elements {
				fmt.Fprintln(w, el.D)
			}
		}
		return nil
	case "markup":
		for _, p := range pages {
			fmt.Fprintf(w, "<!-- page %d -->\n", p.Number)
			for _, el := range p.Elements {
				if err := el.WriteMarkup(w); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
			for _, el := range p.TextElements {
				if err := el.WriteMarkup(w); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toJSON(pages)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

func pngName(base string, page, total int) string {
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), page, ext)
}

func writePNG(name string, p gellyscape.Page) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	img := raster.Render(p.Elements, int(math.Ceil(p.Width)), int(math.Ceil(p.Height)))
	if err := raster.EncodePNG(f, img); err != nil {
		return err
	}
	return f.Close()
}
