package infra

// pdf.go — acta de entrega generation using go-pdf/fpdf.
// Renders an A4 certificate with the employee data, the delivered items and
// a signature area (the captured signature is referenced by URL, not
// embedded — the acta is a record, not a reproduction).

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/kevinpineda22/backend-Dotacion/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateActaPDF renders the printable acta for one entrega and returns
// the PDF bytes.
func GenerateActaPDF(d *model.Dotacion, e *model.Entrega) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Acta de Entrega de Dotación", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Entrega %s — %s", e.ID, e.Fecha), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Employee data ─────────────────────────────────────────────────────────
	filas := [][2]string{
		{"Nombre", d.Nombre},
		{"Documento", d.Documento},
		{"Empresa", d.Empresa},
		{"Sede", d.Sede},
		{"Cargo", d.Cargo},
		{"Categoría", e.Categoria},
		{"Tipo de entrega", e.Tipo},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, fila := range filas {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, fila[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-40, 6, fila[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Item table ────────────────────────────────────────────────────────────
	col1 := contentW * 0.5
	col2 := contentW * 0.25
	col3 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Ítem", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Talla", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Unidades", "B", 1, "C", false, 0, "")

	claves := make([]string, 0, len(e.Items))
	for clave := range e.Items {
		claves = append(claves, clave)
	}
	sort.Strings(claves)

	pdf.SetFont("Helvetica", "", 10)
	for _, clave := range claves {
		item := e.Items[clave]
		pdf.CellFormat(col1, 6, clave, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Talla, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", item.Unidades), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	if e.Observacion != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Observación: "+e.Observacion, "", "L", false)
		pdf.Ln(4)
	}

	// ── Signature area ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	if e.Firma != "" {
		pdf.CellFormat(contentW, 6, "Firmada por el empleado — registro: "+e.Firma, "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(14)
		pdf.Line(20, pdf.GetY(), 20+col1, pdf.GetY())
		pdf.CellFormat(col1, 6, "Firma del empleado", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render acta: %w", err)
	}
	return buf.Bytes(), nil
}
