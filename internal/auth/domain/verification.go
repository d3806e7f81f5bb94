package domain

// VerificationAttempt is the in-flight state between accepted credentials
// and a confirmed session: the short-lived token the client must echo back
// together with the mailed one-time code.
type VerificationAttempt struct {
	// Token correlates the OTP challenge with the signup or signin
	// attempt. Opaque to the client.
	Token string
}
