package glyphatlas

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/text"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	ctx := context.Background()

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("glyphs", 3)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("atlas").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("default logger is enabled for warnings")
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)

	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}
	Logger().Info("frame ready", "lists", 2)
	if !strings.Contains(buf.String(), "frame ready") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "frame ready")
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
}

func TestSetLoggerReachesAtlas(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	reg := text.NewRegistry()
	if err := text.RegisterGoFonts(reg); err != nil {
		t.Fatalf("RegisterGoFonts() error = %v", err)
	}
	cfg := atlas.DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 256, 256
	cache, err := atlas.NewCache(reg, cfg, atlas.WithRasterizer(&constRasterizer{}))
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	defer cache.Close()

	f, err := reg.Font(text.DefaultIdentity)
	if err != nil {
		t.Fatalf("Font() error = %v", err)
	}
	gid, _ := f.GlyphIndex('A')
	if _, err := cache.Ensure(text.DefaultIdentity, []text.GlyphID{gid}); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if !strings.Contains(buf.String(), "atlas: built") {
		t.Errorf("log output = %q, want an atlas build record", buf.String())
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("glyph", "id", 42)
	}
}
