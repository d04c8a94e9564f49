package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/invite"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/service"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mem := repo.NewMemory()
	mem.AddInvitation("gudi-fala", 1)

	pipe := validate.New(mem,
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	ledger := invite.NewLedger(mem, mem, nil, 0)
	log := zap.NewNop()

	srv := NewServer(log,
		service.NewRegistration(log, mem, pipe, ledger, nil, true),
		service.NewUpdate(log, mem, pipe, true),
		service.NewLookup(mem, pipe),
	)
	return srv.Router()
}

func post(t *testing.T, router http.Handler, path, body string) (*httptest.ResponseRecorder, dto.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env dto.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

const registerBody = `{
	"invite": "gudi-fala",
	"name": "Alice",
	"email": "alice@example.com",
	"bet": {"spread": 60, "date": {"year": 2023, "month": 3, "day": 14}}
}`

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := post(t, router, "/register", registerBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, dto.StatusOK, env.Status)
	require.NotNil(t, env.Member)
	assert.Equal(t, "Alice", env.Member.Name)
	assert.NotEmpty(t, env.Member.Passcode)
}

func TestRegisterThenLookup(t *testing.T) {
	router := newTestRouter(t)

	_, reg := post(t, router, "/register", registerBody)
	require.NotNil(t, reg.Member)

	rec, env := post(t, router, "/lookup", `{"passcode": "`+reg.Member.Passcode+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, dto.StatusOK, env.Status)
	assert.Equal(t, reg.Member, env.Member)
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec, env := post(t, router, "/register", `{"invite": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Contains(t, env.Errors, "malformed request")
}

func TestUnknownFieldRejected(t *testing.T) {
	router := newTestRouter(t)

	rec, env := post(t, router, "/lookup", `{"passcode": "x", "bogus": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.StatusError, env.Status)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestVerifyNameEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := post(t, router, "/verify/name", `{"name": "Al"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, dto.StatusNok, env.Status)
	require.Len(t, env.Issues, 1)
	assert.True(t, strings.Contains(env.Issues[0], "at least 3 symbols"))
}
