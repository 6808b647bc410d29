package view

// Response is the envelope every API endpoint returns.
type Response[T any] struct {
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Request any    `json:"request,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse documents plain message payloads for swagger
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse documents error payloads for swagger
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateResponse builds the response envelope. The request is echoed back
// on validation failures so clients can see what the server parsed.
func CreateResponse[T any](data T, err error, request any, message string) Response[T] {
	resp := Response[T]{
		Data:    data,
		Request: request,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
