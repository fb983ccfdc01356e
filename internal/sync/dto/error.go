package dto

// ErrorResponse is the body returned by rejected requests, such as a bad
// cron secret or a non-admin token.
type ErrorResponse struct {
	Error string `json:"error"`
}
