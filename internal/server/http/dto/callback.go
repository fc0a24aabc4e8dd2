package dto

// CallbackResponse is the JSON envelope returned by the TXID submission
// endpoint. The endpoint is called asynchronously, so there is no redirect.
type CallbackResponse struct {
	Success bool `json:"success"`
}
