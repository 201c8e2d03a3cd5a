package model

// Response is the JSON envelope used by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries a stable machine-readable code plus a safe message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds an error envelope with the generic code.
func NewErrorResponse(message, details string) Response {
	return NewCodedErrorResponse("ERROR", message, details)
}

// NewCodedErrorResponse builds an error envelope with an explicit code.
func NewCodedErrorResponse(code, message, details string) Response {
	return Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	}
}
