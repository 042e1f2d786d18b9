package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memHistory struct {
	mu      sync.Mutex
	records []*domain.CallbackHistory
}

func (m *memHistory) Create(ctx context.Context, h *domain.CallbackHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.records = append(m.records, &cp)
	return nil
}

func (m *memHistory) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.CallbackHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, nil
}

func newTestDispatcher(history *memHistory) *Dispatcher {
	return NewDispatcher(time.Second, history, metrics.NewProcessingMetrics(prometheus.NewRegistry()))
}

func TestSendTransactionCallbacksSuccess(t *testing.T) {
	var gotPayload CallbackPayload
	var gotUserAgent, gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotToken = r.Header.Get("X-Merchant-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	history := &memHistory{}
	d := newTestDispatcher(history)

	tx := &domain.Transaction{ID: "tx-1", Amount: 3000, CallbackURI: srv.URL}
	d.SendTransactionCallbacks(tx, domain.StatusReady, "merchant-token")

	assert.Equal(t, "Chase/1.0", gotUserAgent)
	assert.Equal(t, "merchant-token", gotToken)
	assert.Equal(t, "tx-1", gotPayload.ID)
	assert.Equal(t, float64(3000), gotPayload.Amount)
	assert.Equal(t, "READY", gotPayload.Status)

	require.Len(t, history.records, 1)
	record := history.records[0]
	require.NotNil(t, record.StatusCode)
	assert.Equal(t, http.StatusOK, *record.StatusCode)
	assert.Nil(t, record.Error)
}

func TestSendTransactionCallbacksStatusSpecificURLs(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}

	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits[name]++
			mu.Unlock()
		}
	}
	count := func(name string) int {
		mu.Lock()
		defer mu.Unlock()
		return hits[name]
	}

	cbSrv := httptest.NewServer(handler("callback"))
	defer cbSrv.Close()
	successSrv := httptest.NewServer(handler("success"))
	defer successSrv.Close()
	failSrv := httptest.NewServer(handler("fail"))
	defer failSrv.Close()

	history := &memHistory{}
	d := newTestDispatcher(history)

	tx := &domain.Transaction{
		ID:          "tx-1",
		CallbackURI: cbSrv.URL,
		SuccessURI:  successSrv.URL,
		FailURI:     failSrv.URL,
	}

	d.SendTransactionCallbacks(tx, domain.StatusReady, "")
	assert.Equal(t, 1, count("callback"))
	assert.Equal(t, 1, count("success"))
	assert.Equal(t, 0, count("fail"))

	d.SendTransactionCallbacks(tx, domain.StatusExpired, "")
	assert.Equal(t, 2, count("callback"))
	assert.Equal(t, 1, count("success"))
	assert.Equal(t, 1, count("fail"))
}

func TestSendTransactionCallbacksSkipsSentinelURLs(t *testing.T) {
	history := &memHistory{}
	d := newTestDispatcher(history)

	tx := &domain.Transaction{ID: "tx-1", CallbackURI: "none", SuccessURI: ""}
	d.SendTransactionCallbacks(tx, domain.StatusReady, "")

	assert.Empty(t, history.records)
}

func TestSendRecordsNon2xxResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	history := &memHistory{}
	d := newTestDispatcher(history)

	tx := &domain.Transaction{ID: "tx-1", CallbackURI: srv.URL}
	d.SendTransactionCallbacks(tx, domain.StatusCanceled, "")

	require.Len(t, history.records, 1)
	record := history.records[0]
	require.NotNil(t, record.StatusCode)
	assert.Equal(t, http.StatusInternalServerError, *record.StatusCode)
	require.NotNil(t, record.Error)
	assert.Contains(t, *record.Error, "500")
}

func TestSendRecordsConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	history := &memHistory{}
	d := newTestDispatcher(history)

	tx := &domain.Transaction{ID: "tx-1", CallbackURI: url}
	d.SendTransactionCallbacks(tx, domain.StatusCanceled, "")

	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.Nil(t, record.StatusCode)
	require.NotNil(t, record.Error)
	assert.Equal(t, "tx-1", record.TransactionID)
}
