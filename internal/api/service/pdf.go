package service

import (
	"bytes"
	"fmt"
)

// US letter page in PDF points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// buildPDF wraps a JPEG frame in a single-page PDF, centered on a letter
// page at one point per pixel. JPEG bytes embed directly as a DCTDecode
// image XObject, so no re-encoding is needed.
func buildPDF(jpegData []byte, width, height int) ([]byte, error) {
	if len(jpegData) == 0 {
		return nil, fmt.Errorf("empty image frame")
	}

	x := (pageWidth - width) / 2
	y := (pageHeight - height) / 2

	content := fmt.Sprintf("q\n%d 0 0 %d %d %d cm\n/Im0 Do\nQ\n", width, height, x, y)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 5)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj(fmt.Sprintf(
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
			"/Resources << /XObject << /Im0 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		pageWidth, pageHeight))

	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf,
		"4 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d "+
			"/ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n",
		width, height, len(jpegData))
	buf.Write(jpegData)
	buf.WriteString("\nendstream\nendobj\n")

	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
		len(content), content))

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf,
		"trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	return buf.Bytes(), nil
}
