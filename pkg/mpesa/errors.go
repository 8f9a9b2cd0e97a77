package mpesa

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// AuthError возвращается, когда шлюз отклонил учетные данные или недоступен при получении токена
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("mpesa auth failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("mpesa auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// GatewayError любой неуспешный ответ шлюза или некорректный payload
type GatewayError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("mpesa %s failed", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" [%s]", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// errorBody формат ошибок Daraja API
type errorBody struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}
