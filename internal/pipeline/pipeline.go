package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elvis888361/invoice-extractor/internal/common"
	"github.com/elvis888361/invoice-extractor/internal/entity"
	"github.com/elvis888361/invoice-extractor/internal/extract"
	"github.com/elvis888361/invoice-extractor/internal/layout"
	"github.com/elvis888361/invoice-extractor/internal/llm"
	"github.com/elvis888361/invoice-extractor/internal/validate"
)

// Request is one document-processing invocation. Runs are the page's text
// runs in document space; RawText is the recognizer's plain-text pass over
// the rendered page. All of it is request-scoped and never shared.
type Request struct {
	Runs        []entity.DocToken
	PageWidth   float64
	PageHeight  float64
	PixelWidth  int
	PixelHeight int
	RawText     string
	SessionID   string
}

// Pipeline wires the extraction stages in strict order: normalize, cluster,
// extract (fields, items, totals), validate. Stages share nothing across
// requests, so one Pipeline serves concurrent callers.
type Pipeline struct {
	Logger    *slog.Logger
	Semantic  llm.SemanticExtractor
	Validator *validate.Validator
	Notifier  Notifier
}

func New(logger *slog.Logger, semantic llm.SemanticExtractor, validator *validate.Validator, notifier Notifier) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Pipeline{
		Logger:    logger,
		Semantic:  semantic,
		Validator: validator,
		Notifier:  notifier,
	}
}

// Run executes the full extraction for one document page. The only terminal
// failure is the invoice gate (and cancellation); everything else degrades to
// null fields plus report entries.
func (p *Pipeline) Run(ctx context.Context, req Request) (*entity.InvoiceDocument, error) {
	rid := uuid.New().String()
	ctx = common.WithRequestID(ctx, rid)
	ctx = common.WithSessionID(ctx, req.SessionID)
	start := time.Now()

	log := p.Logger.With("req_id", rid)
	log.Info("pipeline.start",
		"runs", len(req.Runs), "raw_bytes", len(req.RawText),
		"pixel_w", req.PixelWidth, "pixel_h", req.PixelHeight,
	)
	p.Notifier.Step(req.SessionID, StepStart, "Starting comprehensive invoice processing...")

	if !extract.IsInvoiceText(req.RawText) {
		log.Warn("pipeline.not_invoice")
		return nil, common.NewAppError("NOT_INVOICE",
			"it looks like this is not an invoice, we can not extract it", common.ErrNotInvoice)
	}

	// Stage 1: coordinate normalization.
	if err := stageGate(ctx); err != nil {
		return nil, err
	}
	p.Notifier.Step(req.SessionID, StepNormalize, "Converting to pixel coordinates...")
	tokens := layout.Normalize(req.Runs, layout.PageSpace{
		DocWidth:    req.PageWidth,
		DocHeight:   req.PageHeight,
		PixelWidth:  req.PixelWidth,
		PixelHeight: req.PixelHeight,
	})
	log.Debug("pipeline.normalized", "tokens", len(tokens))

	// Stage 2: clustering into text blocks.
	if err := stageGate(ctx); err != nil {
		return nil, err
	}
	p.Notifier.Step(req.SessionID, StepGroup, "Grouping text elements...")
	blocks := layout.Cluster(tokens)
	log.Debug("pipeline.clustered", "blocks", len(blocks))

	// Stage 3-5: field, item and totals extraction over disjoint views.
	if err := stageGate(ctx); err != nil {
		return nil, err
	}
	p.Notifier.Step(req.SessionID, StepExtractDetails, "Extracting comprehensive invoice details...")
	details := extract.ExtractDetails(blocks, req.RawText)

	p.Notifier.Step(req.SessionID, StepExtractItems, "Extracting line items...")
	items := extract.ExtractItems(blocks)

	p.Notifier.Step(req.SessionID, StepExtractTotal, "Extracting total amounts...")
	totals, procErrors := p.extractTotals(ctx, blocks, req.RawText, log)

	// Stage 6: assembly and validation.
	if err := stageGate(ctx); err != nil {
		return nil, err
	}
	doc := assemble(details, items, totals, procErrors, req.RawText)

	p.Notifier.Step(req.SessionID, StepValidate, "Validating extracted data...")
	doc.DataValidation = p.Validator.Validate(ctx, doc, tokens)

	log.Info("pipeline.done",
		"items", len(doc.Items),
		"completeness", doc.DataValidation.CompletenessScore,
		"errors", len(doc.Errors),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	p.Notifier.Step(req.SessionID, StepComplete, "Comprehensive processing complete")
	return doc, nil
}

// extractTotals runs the geometric pass and falls back to the semantic
// extractor when no totals block qualifies. The fallback event is always
// recorded; a fallback failure leaves the totals unresolved rather than
// failing the request.
func (p *Pipeline) extractTotals(ctx context.Context, blocks []entity.TextBlock, rawText string, log *slog.Logger) (entity.TotalsRecord, []entity.ProcessingError) {
	totals, ok := extract.ExtractTotals(blocks)
	if ok {
		return totals, nil
	}

	procErrors := []entity.ProcessingError{{Error: "Total not found automatically."}}
	log.Warn("pipeline.totals.fallback", "reason", "no totals block")

	if p.Semantic == nil {
		procErrors = append(procErrors, entity.ProcessingError{Error: "Semantic extractor unavailable."})
		return entity.TotalsRecord{Fallback: true}, procErrors
	}

	fields, _, err := p.Semantic.ExtractTotals(ctx, llm.TotalsRequest{RawText: rawText})
	if err != nil {
		log.Warn("pipeline.totals.fallback_failed", "error", err)
		procErrors = append(procErrors, entity.ProcessingError{Error: fmt.Sprintf("Semantic totals extraction failed: %v", err)})
		return entity.TotalsRecord{Fallback: true}, procErrors
	}

	return entity.TotalsRecord{
		TotalAmountInclVAT:    fields.TotalAmountInclVAT,
		SubtotalAmountExclVAT: fields.SubtotalAmountExclVAT,
		VATAmountItem:         fields.VATAmountItem,
		Fallback:              true,
	}, procErrors
}

// assemble builds the wire document. Every contract key is present; missing
// values stay nil so they serialize as null.
func assemble(details extract.Details, items []entity.LineItem, totals entity.TotalsRecord, procErrors []entity.ProcessingError, rawText string) *entity.InvoiceDocument {
	payment := extract.DeterminePaymentStatus(rawText)

	holder := details.Holder
	if holder == "" {
		holder = details.Sender.Company
	}

	if procErrors == nil {
		procErrors = []entity.ProcessingError{}
	}
	if items == nil {
		items = []entity.LineItem{}
	}

	return &entity.InvoiceDocument{
		Errors: procErrors,
		Items:  items,
		Sender: entity.Sender{
			Company:  strPtr(details.Sender.Company),
			Address:  strPtr(details.Sender.Address),
			Postcode: strPtr(details.Sender.Postcode),
			City:     strPtr(details.Sender.City),
			Phone:    strPtr(details.Sender.Phone),
			Email:    strPtr(details.Sender.Email),
			Website:  strPtr(details.Sender.Website),
			Country:  details.Country,
		},
		Receiver: entity.Receiver{
			Company:  strPtr(details.Receiver.Company),
			Address:  strPtr(details.Receiver.Address),
			Postcode: strPtr(details.Receiver.Postcode),
			City:     strPtr(details.Receiver.City),
		},
		Company: entity.Company{
			KVKNumber: strPtr(details.KVKNumber),
			VATNumber: strPtr(details.VATNumber),
			Country:   details.Country,
			Logo:      extract.EstimateLogo(details.Sender.Company),
		},
		Invoice: entity.Invoice{
			Number:            strPtr(details.InvoiceNo),
			Date:              strPtr(details.Date),
			Paid:              payment.Paid,
			PaymentMethod:     strPtr(payment.Method),
			PaymentConfidence: payment.Confidence,
		},
		Bank: entity.Bank{
			IBAN:          strPtr(details.IBAN),
			AccountHolder: strPtr(holder),
		},
		TotalAmountInclVAT:    totals.TotalAmountInclVAT,
		SubtotalAmountExclVAT: totals.SubtotalAmountExclVAT,
		VATAmountItem:         totals.VATAmountItem,
		VATPercentage:         totals.VATPercentage,
		Coordinates:           totals.Coordinates,
		TotalsFallback:        totals.Fallback,
	}
}

// stageGate aborts between stages once the request is cancelled; no stage
// produces partial side effects that would need rollback.
func stageGate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline cancelled: %w", err)
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
