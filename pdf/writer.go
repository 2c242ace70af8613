// pdf/writer.go
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 20.0
	bodyFontSize = 10.0
)

// DocWriter owns the vertical cursor and page geometry so section code
// never touches page coordinates directly. All units are millimeters on
// an A4 portrait page.
type DocWriter struct {
	pdf    *gofpdf.Fpdf
	y      float64
	top    float64
	bottom float64
	left   float64
	width  float64
}

func NewDocWriter() *DocWriter {
	f := gofpdf.New("P", "mm", "A4", "")
	// content streams stay uncompressed so the rendered text is searchable
	f.SetCompression(false)
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()

	pageW, pageH := f.GetPageSize()
	return &DocWriter{
		pdf:    f,
		y:      pageMargin,
		top:    pageMargin,
		bottom: pageH - pageMargin,
		left:   pageMargin,
		width:  pageW - 2*pageMargin,
	}
}

// EnsureSpace starts a new page unless h millimeters fit above the
// bottom margin.
func (w *DocWriter) EnsureSpace(h float64) {
	if w.y+h > w.bottom {
		w.pdf.AddPage()
		w.y = w.top
	}
}

// WriteLine writes a single left-aligned line. style is "" or "B".
func (w *DocWriter) WriteLine(text, style string, size float64) {
	h := size * 0.5
	w.EnsureSpace(h)
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.SetXY(w.left, w.y)
	w.pdf.CellFormat(w.width, h, text, "", 0, "L", false, 0, "")
	w.y += h
}

// WriteCentered writes a single centered line.
func (w *DocWriter) WriteCentered(text, style string, size float64) {
	h := size * 0.5
	w.EnsureSpace(h)
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.SetXY(w.left, w.y)
	w.pdf.CellFormat(w.width, h, text, "", 0, "C", false, 0, "")
	w.y += h
}

// WriteWrapped writes text wrapped to the usable width.
func (w *DocWriter) WriteWrapped(text string, size float64) {
	w.pdf.SetFont("Helvetica", "", size)
	lines := w.pdf.SplitLines([]byte(text), w.width)
	for _, line := range lines {
		w.WriteLine(string(line), "", size)
	}
}

// Gap advances the cursor without writing.
func (w *DocWriter) Gap(h float64) {
	w.y += h
}

// Underline draws a horizontal rule of the given width at the cursor,
// used for blank signature lines.
func (w *DocWriter) Underline(width float64) {
	w.EnsureSpace(2)
	w.pdf.Line(w.left, w.y, w.left+width, w.y)
	w.y += 2
}

// Image embeds a data-URI image at the cursor and advances past it.
// The name must be unique within the document.
func (w *DocWriter) Image(name, dataURI string, width, height float64) error {
	raw, imgType, err := decodeDataURI(dataURI)
	if err != nil {
		return err
	}
	// reject anything gofpdf cannot parse before touching the document;
	// a failed registration poisons the whole Fpdf instance
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("undecodable %s image: %w", imgType, err)
	}

	w.EnsureSpace(height)
	opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	w.pdf.ImageOptions(name, w.left, w.y, width, height, false, opts, 0, "")
	w.y += height
	return nil
}

// Output finalizes the document and returns its bytes.
func (w *DocWriter) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeDataURI(uri string) ([]byte, string, error) {
	const prefix = "data:image/"
	const marker = ";base64,"

	idx := strings.Index(uri, marker)
	if !strings.HasPrefix(uri, prefix) || idx < 0 {
		return nil, "", fmt.Errorf("not an image data URI")
	}

	imgType := strings.ToUpper(uri[len(prefix):idx])
	switch imgType {
	case "PNG", "JPEG", "JPG":
	default:
		return nil, "", fmt.Errorf("unsupported image type %q", imgType)
	}

	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(marker):])
	if err != nil {
		return nil, "", fmt.Errorf("decode image data: %w", err)
	}
	return raw, imgType, nil
}
