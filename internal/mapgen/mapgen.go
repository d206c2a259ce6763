// Package mapgen renders the player's journey so far as a printable
// PDF: every visited scenario node as a stop along a winding path, with
// battles marked and the current stop highlighted.
package mapgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"yokaiquest/internal/content"
)

const (
	pageW     = 595.0
	pageH     = 842.0
	margin    = 48.0
	stopW     = 120.0
	stopH     = 46.0
	colGap    = 40.0
	rowGap    = 36.0
	titleSize = 18
	stopSize  = 9
	labelSize = 7
)

// Generate returns PDF bytes for the journey map. If visited is empty,
// currentID is used as the only stop.
func Generate(catalog *content.Catalog, visited []string, currentID, title string) ([]byte, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	path := visited
	if len(path) == 0 && currentID != "" {
		path = []string{currentID}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle(title, true)
	pdf.AddPage()

	// Parchment-ish background.
	pdf.SetFillColor(245, 238, 220)
	pdf.Rect(0, 0, pageW, pageH, "F")

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetTextColor(70, 50, 20)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, titleSize+4, title, "", 0, "C", false, 0, "")

	usableW := float64(pageW - 2*margin + colGap)
	cols := int(usableW / (stopW + colGap))
	if cols < 1 {
		cols = 1
	}

	type point struct{ x, y float64 }
	centers := make([]point, len(path))
	topY := margin + titleSize + 28
	for i := range path {
		row := i / cols
		col := i % cols
		if row%2 == 1 {
			// Boustrophedon: odd rows run right to left.
			col = cols - 1 - col
		}
		x := margin + float64(col)*(stopW+colGap)
		y := topY + float64(row)*(stopH+rowGap)
		centers[i] = point{x + stopW/2, y + stopH/2}
	}

	// Dashed path between consecutive stops, drawn under the boxes.
	pdf.SetDrawColor(150, 110, 60)
	pdf.SetLineWidth(1.2)
	pdf.SetDashPattern([]float64{4, 3}, 0)
	for i := 1; i < len(centers); i++ {
		pdf.Line(centers[i-1].x, centers[i-1].y, centers[i].x, centers[i].y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	for i, id := range path {
		row := i / cols
		col := i % cols
		if row%2 == 1 {
			col = cols - 1 - col
		}
		x := margin + float64(col)*(stopW+colGap)
		y := topY + float64(row)*(stopH+rowGap)

		label := id
		isBattle := false
		if n, ok := catalog.Node(id); ok {
			if n.Title != "" {
				label = n.Title
			}
			isBattle = n.Type == content.NodeEnemy
		}

		if id == currentID {
			pdf.SetFillColor(255, 230, 170)
			pdf.SetDrawColor(180, 120, 30)
		} else {
			pdf.SetFillColor(252, 248, 238)
			pdf.SetDrawColor(150, 110, 60)
		}
		pdf.SetLineWidth(1)
		pdf.Rect(x, y, stopW, stopH, "FD")

		pdf.SetFont("Helvetica", "B", stopSize)
		pdf.SetTextColor(60, 40, 15)
		pdf.SetXY(x+4, y+6)
		pdf.CellFormat(stopW-8, stopSize+2, label, "", 0, "C", false, 0, "")

		sub := fmt.Sprintf("stop %d", i+1)
		if isBattle {
			sub += " - battle"
		}
		pdf.SetFont("Helvetica", "", labelSize)
		pdf.SetTextColor(120, 90, 50)
		pdf.SetXY(x+4, y+stopH-labelSize-6)
		pdf.CellFormat(stopW-8, labelSize+2, sub, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render journey map: %w", err)
	}
	return buf.Bytes(), nil
}
