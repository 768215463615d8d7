package model

// Notification is a best-effort message published to the broker and
// delivered by the worker. Delivery failure never affects the request
// that produced it.
type Notification struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
