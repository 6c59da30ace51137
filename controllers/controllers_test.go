package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/KevinRabun/TruePulse-sub002/config"
	"github.com/KevinRabun/TruePulse-sub002/routes"
	"github.com/KevinRabun/TruePulse-sub002/testutil"
)

// setupTest wires the config globals the controllers read to a fresh test
// database and returns it alongside the fully wired router.
func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	config.DB = db
	config.JWTSecret = []byte("test-jwt-secret")
	config.VoteTokenSalt = testutil.Salt
	config.TallyMode = config.TallySync

	return db, routes.SetupRouter()
}

// bearerToken signs a session token for the given voter, the same way the
// login handler does.
func bearerToken(t *testing.T, voterID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"voter_id": voterID,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(config.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return "Bearer " + signed
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}
