package tokenx_test

import (
	"testing"
	"time"

	"github.com/powoftech/relic-chat/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newCodec(t *testing.T, opts ...tokenx.Option) *tokenx.Codec {
	t.Helper()
	c, err := tokenx.NewCodec(testSecret, "relic-auth", opts...)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	_, err := tokenx.NewCodec([]byte("too-short"), "relic-auth")
	require.Error(t, err)
}

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	c := newCodec(t)

	for _, p := range []tokenx.Purpose{tokenx.PurposeVerification, tokenx.PurposeAccess} {
		t.Run(string(p), func(t *testing.T) {
			token, err := c.Issue("alice@example.com", p)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			subject, err := c.DecodeSubject(token, p)
			require.NoError(t, err)
			require.Equal(t, "alice@example.com", subject)
		})
	}
}

func TestIssue_UniquePerIssuance(t *testing.T) {
	c := newCodec(t)

	a, err := c.Issue("alice@example.com", tokenx.PurposeAccess)
	require.NoError(t, err)
	b, err := c.Issue("alice@example.com", tokenx.PurposeAccess)
	require.NoError(t, err)

	// Same subject, same purpose, but the jti makes each token unique.
	require.NotEqual(t, a, b)
}

func TestIssue_EmptySubject(t *testing.T) {
	c := newCodec(t)

	_, err := c.Issue("", tokenx.PurposeAccess)
	require.ErrorIs(t, err, tokenx.ErrMissingSubject)
}

func TestDecode_PurposeMismatch(t *testing.T) {
	c := newCodec(t)

	token, err := c.Issue("alice@example.com", tokenx.PurposeVerification)
	require.NoError(t, err)

	// A verification token must not pass as an access token.
	_, err = c.DecodeSubject(token, tokenx.PurposeAccess)
	require.ErrorIs(t, err, tokenx.ErrPurposeMismatch)
}

func TestDecode_Expired(t *testing.T) {
	now := time.Now()
	clock := &now

	c := newCodec(t, tokenx.WithClock(func() time.Time { return *clock }))

	token, err := c.Issue("alice@example.com", tokenx.PurposeVerification)
	require.NoError(t, err)

	later := now.Add(31 * time.Minute)
	clock = &later

	_, err = c.DecodeSubject(token, tokenx.PurposeVerification)
	require.ErrorIs(t, err, tokenx.ErrExpired)
}

func TestDecode_CustomTTL(t *testing.T) {
	now := time.Now()
	clock := &now

	c := newCodec(t,
		tokenx.WithClock(func() time.Time { return *clock }),
		tokenx.WithTTL(tokenx.PurposeAccess, time.Minute),
	)

	token, err := c.Issue("alice@example.com", tokenx.PurposeAccess)
	require.NoError(t, err)

	later := now.Add(2 * time.Minute)
	clock = &later

	_, err = c.DecodeSubject(token, tokenx.PurposeAccess)
	require.ErrorIs(t, err, tokenx.ErrExpired)
}

func TestDecode_Malformed(t *testing.T) {
	c := newCodec(t)

	for _, s := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := c.DecodeSubject(s, tokenx.PurposeAccess)
		require.ErrorIs(t, err, tokenx.ErrMalformed, "input %q", s)
	}
}

func TestDecode_TamperedSignature(t *testing.T) {
	c := newCodec(t)

	token, err := c.Issue("alice@example.com", tokenx.PurposeAccess)
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = c.DecodeSubject(tampered, tokenx.PurposeAccess)
	require.ErrorIs(t, err, tokenx.ErrInvalidSignature)
}

func TestDecode_WrongKey(t *testing.T) {
	c := newCodec(t)

	other, err := tokenx.NewCodec([]byte("ffffffffffffffffffffffffffffffff"), "relic-auth")
	require.NoError(t, err)

	token, err := other.Issue("alice@example.com", tokenx.PurposeAccess)
	require.NoError(t, err)

	_, err = c.DecodeSubject(token, tokenx.PurposeAccess)
	require.ErrorIs(t, err, tokenx.ErrInvalidSignature)
}
