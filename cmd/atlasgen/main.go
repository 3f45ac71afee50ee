// Command atlasgen bakes a font's glyphs into an MTSDF atlas PNG and a JSON
// metadata file.
//
// Usage:
//
//	atlasgen -font DejaVuSans.ttf -chars "0123456789" -o digits
//
// Without -font the embedded Go Regular font is used.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/internal/parallel"
	"github.com/gogpu/glyphatlas/text"
)

func main() {
	def := atlas.DefaultConfig()
	var (
		fontPath = flag.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
		chars    = flag.String("chars", asciiPrintable(), "characters to bake")
		output   = flag.String("o", "atlas", "output path without extension")
		canvas   = flag.Int("canvas", def.CanvasWidth, "canvas width and height in pixels")
		scale    = flag.Float64("scale", def.Scale, "pixels per font unit")
		rng      = flag.Float64("range", def.Range, "distance range in font units")
		padding  = flag.Int("padding", def.Padding, "padding between glyphs in pixels")
		workers  = flag.Int("workers", def.Workers, "rasterization workers (0 = GOMAXPROCS)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	initDisplay()
	if *verbose {
		glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := def
	cfg.CanvasWidth, cfg.CanvasHeight = *canvas, *canvas
	cfg.Scale = *scale
	cfg.Range = *rng
	cfg.Padding = *padding
	cfg.Workers = *workers

	if err := run(*fontPath, *chars, *output, cfg); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(fontPath, chars, output string, cfg atlas.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := text.NewRegistry()
	id := text.DefaultIdentity
	if fontPath == "" {
		if err := text.RegisterGoFonts(reg); err != nil {
			return err
		}
	} else {
		id = text.Identity{Name: strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))}
		f, err := text.LoadFont(fontPath, id)
		if err != nil {
			return err
		}
		reg.Register(f)
	}
	f, err := reg.Font(id)
	if err != nil {
		return err
	}

	gids := make([]text.GlyphID, 0, len(chars))
	for _, r := range chars {
		gid, ok := f.GlyphIndex(r)
		if !ok {
			pterm.Info.Printf("no glyph for %q, using .notdef\n", r)
		}
		gids = append(gids, gid)
	}

	pool := parallel.NewWorkerPool(cfg.Workers)
	defer pool.Close()
	cache, err := atlas.NewCache(reg, cfg, atlas.WithWorkerPool(pool))
	if err != nil {
		return err
	}
	defer cache.Close()

	a, err := cache.Ensure(id, gids)
	if err != nil {
		return err
	}

	pngPath, jsonPath := output+".png", output+".json"
	if err := writeFile(pngPath, a.WritePNG); err != nil {
		return err
	}
	if err := writeFile(jsonPath, func(w io.Writer) error { return a.WriteMetadata(w, f) }); err != nil {
		return err
	}

	return printSummary(f, a, pngPath, jsonPath)
}

func writeFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

func printSummary(f *text.Font, a *atlas.Atlas, pngPath, jsonPath string) error {
	substituted := 0
	for _, gid := range a.Glyphs() {
		if e, _ := a.Lookup(gid); e.Substituted {
			substituted++
		}
	}
	w, h := a.Size()
	data := [][]string{
		{"Property", "Value"},
		{"Font", f.Name()},
		{"Glyphs", fmt.Sprint(a.Len())},
		{"Substituted", fmt.Sprint(substituted)},
		{"Dropped", fmt.Sprint(len(a.Dropped()))},
		{"Canvas", fmt.Sprintf("%dx%d", w, h)},
		{"Pixel range", fmt.Sprintf("%.2f", a.PixelRange())},
		{"Utilization", fmt.Sprintf("%.1f%%", a.Utilization()*100)},
		{"Image", pngPath},
		{"Metadata", jsonPath},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if n := len(a.Dropped()); n > 0 {
		pterm.Error.Printf("%d glyphs did not fit; increase -canvas or lower -scale\n", n)
	}
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func asciiPrintable() string {
	var sb strings.Builder
	for r := rune(0x20); r < 0x7f; r++ {
		sb.WriteRune(r)
	}
	return sb.String()
}
