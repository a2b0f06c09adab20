package llm

import "context"

// TotalsFields is the normalized shape we want back from the model when the
// geometric totals pass failed. Missing values stay nil.
type TotalsFields struct {
	TotalAmountInclVAT    *float64 `json:"total_amount_incl_vat"`
	SubtotalAmountExclVAT *float64 `json:"subtotal_amount_excl_vat"`
	VATAmountItem         *float64 `json:"vat_amount_item"`
}

// TotalsRequest carries the raw recognized text plus hints for the model.
type TotalsRequest struct {
	RawText  string
	Language string
}

// SemanticExtractor is the fallback collaborator the pipeline depends on.
// Implementations must honor ctx cancellation; the pipeline treats any error
// as a warning, never a request failure.
type SemanticExtractor interface {
	ExtractTotals(ctx context.Context, req TotalsRequest) (TotalsFields, []byte /*rawJSON*/, error)
}
