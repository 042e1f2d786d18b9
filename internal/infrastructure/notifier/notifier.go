package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
)

const userAgent = "Chase/1.0"

// Dispatcher delivers merchant callbacks and records every attempt to
// CallbackHistory. Delivery failures are observability data, never a
// reason to fail the transition that triggered them.
type Dispatcher struct {
	client  *http.Client
	history domain.CallbackHistoryRepository
	metrics *metrics.ProcessingMetrics
	newID   func() string
}

func NewDispatcher(timeout time.Duration, history domain.CallbackHistoryRepository, processingMetrics *metrics.ProcessingMetrics) *Dispatcher {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		panic(err)
	}

	return &Dispatcher{
		client:  &http.Client{Timeout: timeout},
		history: history,
		metrics: processingMetrics,
		newID:   idGenerator,
	}
}

// SendTransactionCallbacks posts the status change to every configured
// URL that applies: callbackUri always, successUri on READY, failUri on
// CANCELED/EXPIRED. Empty and "none" sentinels are skipped.
func (d *Dispatcher) SendTransactionCallbacks(tx *domain.Transaction, status domain.TransactionStatus, merchantToken string) {
	urls := []string{tx.CallbackURI}
	switch status {
	case domain.StatusReady:
		urls = append(urls, tx.SuccessURI)
	case domain.StatusCanceled, domain.StatusExpired:
		urls = append(urls, tx.FailURI)
	}

	payload := CallbackPayload{
		ID:     tx.ID,
		Amount: tx.Amount,
		Status: string(status),
	}

	for _, url := range urls {
		if url == "" || url == "none" {
			continue
		}
		d.send(tx.ID, url, payload, merchantToken)
	}
}

func (d *Dispatcher) send(transactionID, url string, payload CallbackPayload, merchantToken string) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal callback payload", "transaction_id", transactionID, "error", err.Error())
		return
	}

	record := &domain.CallbackHistory{
		ID:            d.newID(),
		TransactionID: transactionID,
		URL:           url,
		Payload:       string(body),
	}

	resp, err := d.post(url, body, merchantToken)
	if err != nil {
		msg := err.Error()
		record.Error = &msg
		d.record(record)
		d.count("request_failed")
		slog.Error("callback request failed", "transaction_id", transactionID, "url", url, "error", msg)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	text := string(respBody)
	record.Response = &text
	code := resp.StatusCode
	record.StatusCode = &code

	if code < 200 || code >= 300 {
		msg := "HTTP " + resp.Status
		record.Error = &msg
		d.count("http_error")
		slog.Warn("callback returned non-2xx", "transaction_id", transactionID, "url", url, "status", resp.Status)
	} else {
		d.count("sent")
		slog.Info("callback sent", "transaction_id", transactionID, "url", url)
	}

	d.record(record)
}

func (d *Dispatcher) count(outcome string) {
	if d.metrics != nil {
		d.metrics.CallbacksTotal.WithLabelValues(outcome).Inc()
	}
}

func (d *Dispatcher) post(url string, body []byte, merchantToken string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if merchantToken != "" {
		req.Header.Set("X-Merchant-Token", merchantToken)
	}

	return d.client.Do(req)
}

func (d *Dispatcher) record(h *domain.CallbackHistory) {
	if err := d.history.Create(context.Background(), h); err != nil {
		slog.Error("failed to save callback history", "transaction_id", h.TransactionID, "error", err.Error())
	}
}
