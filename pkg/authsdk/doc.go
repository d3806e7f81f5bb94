// Package authsdk provides a Go client for the Relic authentication
// service together with the wire types the service itself serves. The
// server handlers and the SDK share these types, so the two sides can
// never drift apart.
//
// Credentials travel as cookies. The client keeps them in an in-memory
// cookie jar; callers that want persistence can supply their own jar.
//
// Basic usage:
//
//	client := authsdk.NewClient("https://auth.example.com")
//
//	attempt, err := client.SignIn(ctx, "alice@example.com", "hunter2")
//	if err != nil {
//		// typed *authsdk.APIError for 4xx/5xx responses
//	}
//
//	// The user reads the 6-digit code from their mail.
//	if err := client.Verify(ctx, attempt.VerificationToken, code); err != nil {
//		...
//	}
//
//	profile, err := client.Me(ctx) // uses the accessToken cookie
package authsdk
