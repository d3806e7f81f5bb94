package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/powoftech/relic-chat/internal/auth/otp"
	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/internal/auth/store/drivers/sqlite"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/cryptox"
	"github.com/powoftech/relic-chat/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "relic-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

var codePattern = regexp.MustCompile(`\d{6}`)

type capturingMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (m *capturingMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

func (m *capturingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.bodies, "no mail was sent")
	code := codePattern.FindString(m.bodies[len(m.bodies)-1])
	require.NotEmpty(t, code)
	return code
}

// newTestServer wires a full router over a :memory: store behind a TLS
// test server, and an SDK client pointed at it. Cookies are Secure, so
// plain-HTTP test servers would silently drop the session flow.
func newTestServer(t *testing.T) (*authsdk.Client, *capturingMailer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	codec, err := tokenx.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "relic-auth")
	require.NoError(t, err)

	mailer := &capturingMailer{}
	otpStore := otp.NewMemoryStore()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := NewRouter(codec, "test", false, st, otpStore, logger)
	router.Directory = &service.DirectoryService{Store: st}
	router.Sessions = &service.SessionService{Codec: codec, Store: st}
	router.Verification = &service.VerificationService{
		Directory: router.Directory,
		Sessions:  router.Sessions,
		OTP:       otpStore,
		Mailer:    mailer,
		Codec:     codec,
	}
	router.ApplyRoutes()

	ts := httptest.NewTLSServer(router)
	t.Cleanup(ts.Close)

	client := authsdk.NewClient(ts.URL)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client.HTTPClient = ts.Client()
	client.HTTPClient.Jar = jar

	return client, mailer
}

func TestSignupVerifyFlow(t *testing.T) {
	client, mailer := newTestServer(t)
	ctx := context.Background()

	// The username is free before signup and taken after.
	avail, err := client.CheckAvailability(ctx, "alice@example.com", "alice")
	require.NoError(t, err)
	require.True(t, avail.EmailAvailable)
	require.True(t, avail.UsernameAvailable)

	attempt, err := client.SignUp(ctx, authsdk.SignUpRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, attempt.VerificationToken)

	avail, err = client.CheckAvailability(ctx, "alice@example.com", "alice")
	require.NoError(t, err)
	require.False(t, avail.EmailAvailable)
	require.False(t, avail.UsernameAvailable)

	// Verify with the mailed code; cookies land in the jar.
	require.NoError(t, client.Verify(ctx, attempt.VerificationToken, mailer.lastCode(t)))

	profile, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "Alice", profile.DisplayName)
	require.Equal(t, "alice@example.com", profile.Email)
	require.Nil(t, profile.AvatarURL)

	// Rotate the session; the profile endpoint still works.
	require.NoError(t, client.Refresh(ctx))
	_, err = client.Me(ctx)
	require.NoError(t, err)

	// Sign out clears the cookies; me is unauthorized afterwards.
	require.NoError(t, client.SignOut(ctx))
	_, err = client.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestSignupValidation(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	_, err := client.SignUp(ctx, authsdk.SignUpRequest{
		Email:       "alice@example.com",
		Username:    "12345",
		DisplayName: "Alice",
		Password:    "hunter2",
	})
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeValidation)
}

func TestSignupDuplicate(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	req := authsdk.SignUpRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "hunter2",
	}
	_, err := client.SignUp(ctx, req)
	require.NoError(t, err)

	req.Username = "other"
	_, err = client.SignUp(ctx, req)
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeDuplicateAccount)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	client, mailer := newTestServer(t)
	ctx := context.Background()

	_, err := client.SignUp(ctx, authsdk.SignUpRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "hunter2",
	})
	require.NoError(t, err)

	_, err = client.SignIn(ctx, "alice@example.com", "wrong")
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)

	_, err = client.SignIn(ctx, "ghost@example.com", "hunter2")
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)

	// The real credentials still work.
	attempt, err := client.SignIn(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)
	require.NoError(t, client.Verify(ctx, attempt.VerificationToken, mailer.lastCode(t)))
}

func TestVerifyRejectsWrongAndReplayedCodes(t *testing.T) {
	client, mailer := newTestServer(t)
	ctx := context.Background()

	attempt, err := client.SignUp(ctx, authsdk.SignUpRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "hunter2",
	})
	require.NoError(t, err)
	code := mailer.lastCode(t)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	err = client.Verify(ctx, attempt.VerificationToken, wrong)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCode)

	require.NoError(t, client.Verify(ctx, attempt.VerificationToken, code))

	// The code was consumed by the successful exchange.
	err = client.Verify(ctx, attempt.VerificationToken, code)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCode)
}

func TestRefreshWithoutSession(t *testing.T) {
	client, _ := newTestServer(t)

	err := client.Refresh(context.Background())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

func TestMeWithoutSession(t *testing.T) {
	client, _ := newTestServer(t)

	_, err := client.Me(context.Background())
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestSignOutWithoutSession(t *testing.T) {
	client, _ := newTestServer(t)

	// No refreshToken cookie at all is rejected outright.
	err := client.SignOut(context.Background())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

func TestSignOutWithUnknownToken(t *testing.T) {
	client, _ := newTestServer(t)

	// A present-but-unknown refresh token is revoked as a no-op.
	req, err := http.NewRequest(http.MethodPost, client.BaseURL+"/api/auth/signout", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "never-issued"})

	resp, err := client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.OTPStore)
}

func requireAPIError(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, wantStatus, apiErr.StatusCode)
	if wantCode != "" {
		require.Equal(t, wantCode, apiErr.Code)
	}
}
