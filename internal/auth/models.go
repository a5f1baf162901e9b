package auth

// DevAuthResponse is returned by POST /v1/auth/dev.
type DevAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      string `json:"user_id"`
}

type EmailOTPRequest struct {
	Email string `json:"email"`
}

type EmailOTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ErrorResponse is the error envelope written by every handler.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
