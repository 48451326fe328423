package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DocumentStore keeps rendered documents and hands out temporary download links
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
}

// DocumentRenderer produces the PDF of a numbered document
type DocumentRenderer interface {
	PDF(ctx context.Context, number string) ([]byte, error)
}

// SpanAttrDocumentKey names the object key of an archived document on spans
const SpanAttrDocumentKey = "document.key"

// Archive key prefixes
const (
	archiveInvoices    = "invoices"
	archiveCreditNotes = "credit-notes"
)

// ArchiveService uploads rendered invoices and credit notes to a DocumentStore
type ArchiveService struct {
	invoices DocumentRenderer
	notes    DocumentRenderer
	store    DocumentStore
	logger   *zap.Logger
}

// NewArchiveService creates an ArchiveService. A nil store disables archiving.
func NewArchiveService(invoices, notes DocumentRenderer, store DocumentStore, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{invoices: invoices, notes: notes, store: store, logger: logger}
}

// Enabled reports whether a store is configured
func (s *ArchiveService) Enabled() bool {
	return s.store != nil
}

// InvoiceLink archives the current rendering of an invoice and returns a download link
func (s *ArchiveService) InvoiceLink(ctx context.Context, number string) (*DocumentLinkResponse, error) {
	return s.link(ctx, s.invoices, archiveInvoices, number)
}

// CreditNoteLink archives the current rendering of a credit note and returns a download link
func (s *ArchiveService) CreditNoteLink(ctx context.Context, number string) (*DocumentLinkResponse, error) {
	return s.link(ctx, s.notes, archiveCreditNotes, number)
}

// DiscardInvoice removes the archived copy of a deleted invoice
func (s *ArchiveService) DiscardInvoice(ctx context.Context, number string) {
	s.discard(ctx, archiveInvoices, number)
}

// DiscardCreditNote removes the archived copy of a deleted credit note
func (s *ArchiveService) DiscardCreditNote(ctx context.Context, number string) {
	s.discard(ctx, archiveCreditNotes, number)
}

func (s *ArchiveService) link(ctx context.Context, renderer DocumentRenderer, prefix, number string) (*DocumentLinkResponse, error) {
	if s.store == nil {
		return nil, shared.NewInvalidInput("document storage is not enabled")
	}

	content, err := renderer.PDF(ctx, number)
	if err != nil {
		return nil, err
	}

	key := archiveKey(prefix, number)
	url, expiresAt, err := s.upload(ctx, key, number, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Document archived", zap.String("key", key), zap.Int("size", len(content)))
	return &DocumentLinkResponse{Number: number, Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

// upload stores content under key and presigns it inside a client span
func (s *ArchiveService) upload(ctx context.Context, key, number string, content []byte) (string, time.Time, error) {
	ctx, span := telemetry.StartSpan(ctx, "document.archive",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(SpanAttrDocumentKey, key),
	)
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDocNo, number)

	if err := s.store.Put(ctx, key, content, "application/pdf"); err != nil {
		telemetry.RecordError(span, err)
		return "", time.Time{}, err
	}
	telemetry.AddEvent(span, "document_uploaded", "size", len(content))

	url, expiresAt, err := s.store.DownloadURL(ctx, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", time.Time{}, err
	}
	telemetry.SetOK(span)
	return url, expiresAt, nil
}

// discard is best effort: a stale archive copy is overwritten when the number is reissued
func (s *ArchiveService) discard(ctx context.Context, prefix, number string) {
	if s.store == nil {
		return
	}
	key := archiveKey(prefix, number)
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to remove archived document", zap.String("key", key), zap.Error(err))
	}
}

func archiveKey(prefix, number string) string {
	return prefix + "/" + number + ".pdf"
}
