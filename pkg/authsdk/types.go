package authsdk

// AvailabilityRequest asks whether an email and username are free.
type AvailabilityRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AvailabilityResponse reports per-field availability. This endpoint
// deliberately leaks which field collides; signup itself does not.
type AvailabilityResponse struct {
	EmailAvailable    bool `json:"emailAvailable"`
	UsernameAvailable bool `json:"usernameAvailable"`
}

// SignUpRequest creates a new unconfirmed account and starts a
// verification attempt.
type SignUpRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// SignInRequest starts a verification attempt for an existing account.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AttemptResponse carries the verification token the client must relay
// back to the verify endpoint together with the mailed code.
type AttemptResponse struct {
	VerificationToken string `json:"verificationToken"`
}

// VerifyRequest carries the 6-digit code from the verification mail.
// The verification token travels as the `token` query parameter.
type VerifyRequest struct {
	OTP string `json:"otp"`
}

// ProfileResponse is the signed-in user's own profile.
type ProfileResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email"`
	AvatarURL   *string `json:"avatarUrl"`
}

// ErrorResponse is the error body every endpoint serves on failure.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is served by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks itemizes dependency state for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	OTPStore string `json:"otp_store"`
}
