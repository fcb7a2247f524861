package notify

import (
	"context"
	"fmt"

	"meddrop/internal/core/domain/model/kernel"
)

// StubInvoicePDFRenderer implements ports.InvoicePDFRenderer with a minimal
// single-page placeholder. Invoice layout is produced elsewhere; the
// orchestrator only needs bytes it can attach.
type StubInvoicePDFRenderer struct{}

// NewStubInvoicePDFRenderer creates the placeholder renderer.
func NewStubInvoicePDFRenderer() *StubInvoicePDFRenderer {
	return &StubInvoicePDFRenderer{}
}

// Render returns a minimal valid PDF that names the invoice.
func (r *StubInvoicePDFRenderer) Render(_ context.Context, invoiceID kernel.UUID) ([]byte, error) {
	text := fmt.Sprintf("Invoice %s", invoiceID)
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	body := fmt.Sprintf(`%%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj
4 0 obj << /Length %d >> stream
%s
endstream endobj
5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj
trailer << /Root 1 0 R >>
%%%%EOF
`, len(stream), stream)

	return []byte(body), nil
}
