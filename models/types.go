package models

// Response types for the read-only status surface

type StatusResponse struct {
	SubscriberCount int      `json:"subscriber_count"`
	Updates         []string `json:"updates"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
