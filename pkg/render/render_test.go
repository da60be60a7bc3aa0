package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicing-pdf/pkg/invoice"
)

func coreFontOptions() Options {
	opts := DefaultOptions()
	opts.Font = FontConfig{Family: "Helvetica"}
	return opts
}

func TestRenderProducesPDF(t *testing.T) {
	for name, layout := range presets {
		t.Run(name, func(t *testing.T) {
			opts := coreFontOptions()
			opts.Layout = layout

			var buf bytes.Buffer
			require.NoError(t, NewRenderer(opts).Render(&buf, invoice.Demo()))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), "%%EOF")
		})
	}
}

func TestRenderFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target", "invoice.pdf")

	require.NoError(t, NewRenderer(coreFontOptions()).RenderFile(path, invoice.Demo()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRenderFileUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	err := NewRenderer(coreFontOptions()).RenderFile(filepath.Join(blocker, "invoice.pdf"), invoice.Demo())
	assert.Error(t, err)
}

func TestRenderMissingFonts(t *testing.T) {
	opts := DefaultOptions()
	opts.Font = FontConfig{Dir: t.TempDir(), Family: "Cabin"}
	path := filepath.Join(t.TempDir(), "invoice.pdf")

	err := NewRenderer(opts).RenderFile(path, invoice.Demo())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cabin")
	assert.NoFileExists(t, path)
}

func TestRenderFontDirWithoutFamily(t *testing.T) {
	opts := DefaultOptions()
	opts.Font = FontConfig{Dir: t.TempDir()}
	assert.Error(t, NewRenderer(opts).Render(&bytes.Buffer{}, invoice.Demo()))
}

func TestRenderManyPositionsBreaksPages(t *testing.T) {
	inv := invoice.Demo()
	inv.Positions = nil
	for i := 0; i < 120; i++ {
		inv.Positions = append(inv.Positions, invoice.Position{Name: "Item", Quantity: float64(i), UnitPrice: 1.5})
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(coreFontOptions()).Render(&buf, inv))
	m := regexp.MustCompile(`/Count (\d+)`).FindStringSubmatch(buf.String())
	require.Len(t, m, 2)
	pages, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestRenderWithLogo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, imaging.Save(imaging.New(800, 200, color.NRGBA{R: 20, G: 80, B: 160, A: 255}), logo))

	opts := coreFontOptions()
	opts.Logo = logo

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(opts).Render(&buf, invoice.Demo()))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestRenderMissingLogo(t *testing.T) {
	opts := coreFontOptions()
	opts.Logo = filepath.Join(t.TempDir(), "missing.png")
	assert.Error(t, NewRenderer(opts).Render(&bytes.Buffer{}, invoice.Demo()))
}

func TestNewRendererDefaults(t *testing.T) {
	opts := NewRenderer(Options{Margin: -4}).Options()
	assert.Equal(t, "Invoice", opts.Title)
	assert.Equal(t, A4, opts.PageSize)
	assert.Zero(t, opts.Margin)
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("")
	require.NoError(t, err)
	assert.Equal(t, CompleteLayout, l)

	l, err = LayoutByName("Classic")
	require.NoError(t, err)
	assert.Equal(t, ClassicLayout, l)

	_, err = LayoutByName("fancy")
	assert.Error(t, err)
}

func TestLayoutFromSections(t *testing.T) {
	l, err := LayoutFromSections([]string{"items", " Summary "})
	require.NoError(t, err)
	assert.Equal(t, Layout{Items: true, Summary: true}, l)

	_, err = LayoutFromSections([]string{"footer"})
	assert.Error(t, err)
}

func TestPageSizeByName(t *testing.T) {
	s, err := PageSizeByName("letter")
	require.NoError(t, err)
	assert.Equal(t, Letter, s)

	s, err = PageSizeByName("")
	require.NoError(t, err)
	assert.Equal(t, A4, s)

	_, err = PageSizeByName("A3")
	assert.Error(t, err)
}

func TestRenderRejectsOversizedMargin(t *testing.T) {
	for _, margin := range []float64{105, 150, 1e9} {
		opts := coreFontOptions()
		opts.Margin = margin
		path := filepath.Join(t.TempDir(), "invoice.pdf")

		err := NewRenderer(opts).RenderFile(path, invoice.Demo())
		require.Error(t, err, "margin %g", margin)
		assert.Contains(t, err.Error(), "margin")
		assert.NoFileExists(t, path)
	}

	opts := coreFontOptions()
	opts.Margin = 60
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(opts).Render(&buf, invoice.Demo()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	opts.PageSize = Letter
	opts.Margin = 107.9
	require.NoError(t, opts.Validate())
	opts.Margin = 107.95
	assert.Error(t, opts.Validate())
}

func TestDefaultOptionsFontDir(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, FontConfig{Dir: "data/fonts/Cabin", Family: "Cabin"}, opts.Font)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "invoice.pdf")
	require.NoError(t, WriteFile(path, []byte("%PDF-1.3")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(got))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	assert.Error(t, WriteFile(filepath.Join(blocker, "invoice.pdf"), []byte("x")))
}
