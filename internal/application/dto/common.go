package dto

// ErrorResponse corpo de erro HTTP. O front espera sempre o campo "error".
type ErrorResponse struct {
	Error string `json:"error"`
}
