package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var coreFonts = map[string]bool{
	"arial":     true,
	"courier":   true,
	"helvetica": true,
	"times":     true,
}

// fontFace maps a gofpdf style to the file suffix used by font families on disk.
type fontFace struct {
	style    string
	suffix   string
	required bool
}

var fontFaces = []fontFace{
	{style: "", suffix: "Regular", required: true},
	{style: "B", suffix: "Bold", required: true},
	{style: "I", suffix: "Italic"},
	{style: "BI", suffix: "BoldItalic"},
}

// fontFiles returns the TrueType files for a family, e.g. data/fonts/Cabin/Cabin-Bold.ttf.
func fontFiles(cfg FontConfig) (map[string]string, error) {
	files := make(map[string]string, len(fontFaces))
	for _, face := range fontFaces {
		name := fmt.Sprintf("%s-%s.ttf", cfg.Family, face.suffix)
		if _, err := os.Stat(filepath.Join(cfg.Dir, name)); err != nil {
			if face.required {
				return nil, fmt.Errorf("font %s: %w", face.suffix, err)
			}
			continue
		}
		files[face.style] = name
	}
	return files, nil
}

// newDocument creates the gofpdf document with the configured font family registered.
// It returns the family name to pass to SetFont and the text translator for that font.
func newDocument(opts Options) (*gofpdf.Fpdf, string, func(string) string, error) {
	initType := &gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: opts.PageSize.Width, Ht: opts.PageSize.Height},
		FontDirStr:     opts.Font.Dir,
	}

	if opts.Font.Dir == "" {
		pdf := gofpdf.NewCustom(initType)
		family := "Helvetica"
		if coreFonts[strings.ToLower(opts.Font.Family)] {
			family = opts.Font.Family
		}
		return pdf, family, pdf.UnicodeTranslatorFromDescriptor(""), nil
	}

	if opts.Font.Family == "" {
		return nil, "", nil, fmt.Errorf("font family is required when a font directory is set")
	}
	files, err := fontFiles(opts.Font)
	if err != nil {
		return nil, "", nil, fmt.Errorf("load font family %s from %s: %w", opts.Font.Family, opts.Font.Dir, err)
	}

	pdf := gofpdf.NewCustom(initType)
	for _, face := range fontFaces {
		if file, ok := files[face.style]; ok {
			pdf.AddUTF8Font(opts.Font.Family, face.style, file)
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, "", nil, fmt.Errorf("load font family %s: %w", opts.Font.Family, err)
	}
	return pdf, opts.Font.Family, func(s string) string { return s }, nil
}
