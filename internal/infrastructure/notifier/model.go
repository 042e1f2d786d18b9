package notifier

// CallbackPayload is the minimal body merchants receive on a status
// change. ID is the transaction id, Status the new status enum value.
type CallbackPayload struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}
