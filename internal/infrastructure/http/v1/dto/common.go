// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// --- Envelope ---

// Response is the envelope wrapping every successful API response.
// Data is always present, even when it is null.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Created wraps a newly created record with a confirmation message.
func Created(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// --- Error Response ---

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
