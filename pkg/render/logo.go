package render

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

const (
	logoName     = "logo"
	logoMaxPx    = 600
	logoWidthMM  = 40
	logoMaxRatio = 0.5 // logo height relative to width
)

// placeLogo normalises the image at path and draws it in the top right corner.
func placeLogo(pdf *gofpdf.Fpdf, path string, margin float64) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open logo: %w", err)
	}
	img = imaging.Fit(img, logoMaxPx, int(logoMaxPx*logoMaxRatio), imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode logo: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(logoName, opts, &buf)
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions(logoName, pageW-margin-logoWidthMM, margin, logoWidthMM, 0, false, opts, 0, "")
	return pdf.Error()
}
