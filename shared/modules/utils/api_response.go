package utils

import "time"

type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	Total     *int      `json:"total,omitempty"`
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}

// CreateDetailedErrorResponse attaches field level details, e.g. validation issues.
func CreateDetailedErrorResponse(code, message string, details any) ErrorResponse {
	resp := CreateErrorResponse(code, message)
	resp.Error.Details = details
	return resp
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}

func CreateListResponse(data any, total int) SuccessResponse {
	resp := CreateSuccessResponse(data)
	resp.Meta.Total = &total
	return resp
}
