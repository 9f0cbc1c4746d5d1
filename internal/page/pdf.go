package page

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the printable inventory: section names with their icon
// counts and tile names. The icons themselves stay in the HTML page.
func WritePDF(sections []Section, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Icon Catalog")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Section", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Icons", "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, 7, "Tile", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	total := 0
	for _, sec := range sections {
		total += len(sec.Icons)
		pdf.CellFormat(90, 6, sec.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", len(sec.Icons)), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, sec.Tile.Name, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 6, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%d", total), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf catalog: %w", err)
	}
	return nil
}
