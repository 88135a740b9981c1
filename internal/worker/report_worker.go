package worker

// report_worker.go
// Processes batch record jobs from QueueBatchReport: renders the batch
// record PDF and, when the final yield deviates beyond the configured
// threshold, enqueues a yield-deviation alert email.

import (
	"context"
	"encoding/json"
	"fmt"

	"batchforge/internal/infra"
	"batchforge/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type BatchReportWorker struct {
	batchRepo   repository.BatchRepository
	txRepo      repository.TransactionRepository
	dispatcher  *Dispatcher
	storagePath string
	// alertThresholdPct: |yield% − 100| above this triggers the alert email
	alertThresholdPct decimal.Decimal
	alertEmail        string
}

func NewBatchReportWorker(
	batchRepo repository.BatchRepository,
	txRepo repository.TransactionRepository,
	dispatcher *Dispatcher,
	storagePath string,
	alertThresholdPct float64,
	alertEmail string,
) *BatchReportWorker {
	return &BatchReportWorker{
		batchRepo:         batchRepo,
		txRepo:            txRepo,
		dispatcher:        dispatcher,
		storagePath:       storagePath,
		alertThresholdPct: decimal.NewFromFloat(alertThresholdPct),
		alertEmail:        alertEmail,
	}
}

// Process renders the batch record and fires the deviation alert if needed.
func (w *BatchReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload BatchReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}

	batchID, err := uuid.Parse(payload.BatchID)
	if err != nil {
		return fmt.Errorf("report_worker: invalid batch_id %q: %w", payload.BatchID, err)
	}

	batch, err := w.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("report_worker: load batch: %w", err)
	}
	transactions, err := w.txRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("report_worker: load ledger: %w", err)
	}

	pdfPath, err := infra.GenerateBatchRecordPDF(batch, transactions, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("batch", batch.BatchNumber).Str("pdf", pdfPath).Msg("report_worker: batch record generated")

	yieldPct, err := decimal.NewFromString(payload.YieldPercentage)
	if err != nil {
		return fmt.Errorf("report_worker: invalid yield percentage %q: %w", payload.YieldPercentage, err)
	}
	deviation := yieldPct.Sub(decimal.NewFromInt(100)).Abs()
	if w.alertEmail == "" || deviation.LessThanOrEqual(w.alertThresholdPct) {
		return nil
	}

	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.alertEmail,
		Subject: fmt.Sprintf("Yield deviation on batch %s", batch.BatchNumber),
		Body: fmt.Sprintf("Batch %s closed with yield %s%% (target %s, actual %s). Batch record attached.",
			batch.BatchNumber, yieldPct.String(), batch.TargetQuantity.String(), batch.ActualQuantity.String()),
		PDFPath: pdfPath,
	})
}
