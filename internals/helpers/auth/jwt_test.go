package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

func TestIssueAndParse(t *testing.T) {
	id := Identity{ID: uuid.New(), Username: "ana@example.com", Role: "user"}
	now := time.Now()

	raw, exp, err := IssueAccessToken("s3cret", id, now, 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(24*time.Hour), exp, time.Second)

	got, gotExp, err := ParseAccessToken("s3cret", raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.WithinDuration(t, exp, gotExp, time.Second)
}

func TestParse_Expired(t *testing.T) {
	id := Identity{ID: uuid.New(), Username: "ana", Role: "user"}
	raw, _, err := IssueAccessToken("s3cret", id, time.Now().Add(-48*time.Hour), 24*time.Hour)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("s3cret", raw)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _, err := IssueAccessToken("s3cret", Identity{ID: uuid.New()}, time.Now(), time.Hour)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("other", raw)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestParse_RejectsNoneAlg(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": uuid.NewString()})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("s3cret", raw)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestParse_Missing(t *testing.T) {
	_, _, err := ParseAccessToken("s3cret", "")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestTokenDigest_Stable(t *testing.T) {
	assert.Equal(t, TokenDigest("abc", "k"), TokenDigest("abc", "k"))
	assert.NotEqual(t, TokenDigest("abc", "k"), TokenDigest("abc", "k2"))
	assert.Len(t, TokenDigest("abc", "k"), 64)
}
