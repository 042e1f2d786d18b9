package publisher

// TransactionEvent is published to Kafka when a transaction reaches a
// terminal status, for the trader bot / back-office consumers.
type TransactionEvent struct {
	TransactionID string  `json:"transaction_id"`
	MerchantID    string  `json:"merchant_id"`
	TraderID      string  `json:"trader_id"`
	Status        string  `json:"status"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
