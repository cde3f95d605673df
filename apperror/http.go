package apperror

import (
	"errors"
	"net/http"
)

// Response is the JSON body written for every failed request.
type Response struct {
	Error  string       `json:"error"`
	Kind   string       `json:"kind"`
	Code   string       `json:"code,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HTTPStatus maps err onto its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ToResponse renders err for a client. Store failures and errors outside the
// taxonomy never expose their cause.
func ToResponse(err error) Response {
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind == KindStore {
		return Response{Error: "internal server error", Kind: KindStore.String()}
	}
	return Response{Error: ae.Message, Kind: ae.Kind.String(), Code: ae.Code, Fields: ae.Fields}
}
