package service

import (
	"fmt"
	"strings"
)

// moduleBox is the rendered edge of one QR module in SVG user units. The
// bitmap from the QR library already carries the quiet-zone border.
const moduleBox = 10

// buildSVG writes the module matrix as one <rect> per dark module on a white
// canvas. SVG is resolution independent, so the size enum does not apply;
// viewers scale the document freely.
func buildSVG(bitmap [][]bool) []byte {
	edge := len(bitmap) * moduleBox

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", edge, edge)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	for row, cols := range bitmap {
		for col, dark := range cols {
			if !dark {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="black"/>`+"\n",
				col*moduleBox, row*moduleBox, moduleBox, moduleBox)
		}
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}
