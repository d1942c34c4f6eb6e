package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/todoflow-labs/list-service/internal/auth"
)

const (
	testKid      = "test-key"
	testAudience = "https://todo.example.com"
)

func newSigningKey(t *testing.T) *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)
	return key
}

func newJWKSServer(t *testing.T, key *rsa.PrivateKey) *httptest.Server {
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKid,
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid, audience string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":   "user-1",
		"aud":   audience,
		"scope": "read:lists write:lists",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	assert.NoError(t, err)
	return signed
}

func TestVerify(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	claims, err := verifier.Verify(context.Background(), signToken(t, key, testKid, testAudience))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "read:lists write:lists", claims.Scope)
}

func TestVerifyWrongAudience(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	_, err := verifier.Verify(context.Background(), signToken(t, key, testKid, "https://someone-else.example.com"))
	assert.Error(t, err)
}

func TestVerifyUnknownKid(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	_, err := verifier.Verify(context.Background(), signToken(t, key, "rotated-away", testAudience))
	assert.Error(t, err)
}

func TestVerifyWrongKey(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	imposter := newSigningKey(t)
	_, err := verifier.Verify(context.Background(), signToken(t, imposter, testKid, testAudience))
	assert.Error(t, err)
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = auth.ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/list/create", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, testKid, testAudience))
	resp := httptest.NewRecorder()
	auth.Middleware(verifier)(next).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, gotClaims)
	assert.Equal(t, "user-1", gotClaims.Subject)
}

func TestMiddlewareRejectsBeforeHandler(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, key)
	verifier := auth.NewVerifier(srv.URL, testAudience)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			handlerRan := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
			})

			req := httptest.NewRequest(http.MethodPost, "/list/create", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp := httptest.NewRecorder()
			auth.Middleware(verifier)(next).ServeHTTP(resp, req)

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.False(t, handlerRan)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
