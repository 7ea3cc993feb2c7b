// Command okcanvas converts a scene, stored as JSON or SVG,
// to a SVG document, a PNG image or a PDF page.
//
//	okcanvas -in scene.json -out scene.svg
//	okcanvas -in scene.svg -out scene.png -scale 2
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/canvas"
	"github.com/benoitkugler/okcanvas/config"
	"github.com/benoitkugler/okcanvas/fonts"
	"github.com/benoitkugler/okcanvas/svgimport"
)

var errFormat = errors.New("unsupported file extension")

type options struct {
	in, out    string
	configFile string
	digits     int
	scale      float64
	verbose    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("okcanvas", flag.ContinueOnError)
	fs.StringVar(&opts.in, "in", "", "input scene (.json or .svg)")
	fs.StringVar(&opts.out, "out", "", "output file (.svg, .png or .pdf)")
	fs.StringVar(&opts.configFile, "config", "", "TOML configuration file")
	fs.IntVar(&opts.digits, "digits", -1, "number of fraction digits in SVG output (overrides the configuration)")
	fs.Float64Var(&opts.scale, "scale", 1, "scale factor for PNG output")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.in == "" || opts.out == "" {
		return opts, errors.New("both -in and -out are required")
	}
	return opts, nil
}

func loadScene(path string) (*canvas.Canvas, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return canvas.FromJSON(data)
	case ".svg":
		return svgimport.ParseFile(path, svgimport.WarnErrorMode)
	}
	return nil, fmt.Errorf("%w: %s", errFormat, path)
}

func writeScene(c *canvas.Canvas, w io.Writer, ext string, scale float64) error {
	switch ext {
	case ".svg":
		_, err := io.WriteString(w, c.ToSVG(canvas.SVGOptions{}))
		return err
	case ".png":
		return c.WritePNG(w, scale)
	case ".pdf":
		return c.WritePDF(w)
	case ".json":
		data, err := c.ToJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: %s", errFormat, ext)
}

// loadFonts registers the local font files of paths, relative paths
// being resolved against dir, so that texts are measured with them.
func loadFonts(paths map[string]string, dir string) error {
	local := make(map[string]string, len(paths))
	families := make([]string, 0, len(paths))
	for family, path := range paths {
		if !strings.Contains(path, "://") && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		local[family] = path
		families = append(families, family)
	}
	if err := fonts.Default.LoadFiles(local); err != nil {
		return err
	}
	fonts.DefaultCache.Clear(families...)
	return nil
}

func run(opts options) error {
	if opts.configFile != "" {
		cfg, err := config.Load(opts.configFile)
		if err != nil {
			return err
		}
		config.Set(cfg)
		if err := loadFonts(cfg.FontPaths, filepath.Dir(opts.configFile)); err != nil {
			return err
		}
	}
	if opts.digits >= 0 {
		config.Configure(func(c *config.Config) { c.NumFractionDigits = opts.digits })
	}

	c, err := loadScene(opts.in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.in, err)
	}

	ext := strings.ToLower(filepath.Ext(opts.out))
	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	err = writeScene(c, f, ext, opts.scale)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(opts.out)
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	okcanvas.Logger().Info("scene written", "objects", len(c.Objects()), "output", opts.out)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	okcanvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}
