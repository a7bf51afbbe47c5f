package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/realtime"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/memstore"
	"github.com/Rohan-debug788/SkillSwap/internal/security"
	"github.com/Rohan-debug788/SkillSwap/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers_test_secret_at_least_32_chars"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *memstore.Store
	tokens map[string]string
	ids    map[string]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	matches := services.NewMatchService(store, 0)
	messages := services.NewMessageService(store, 0)
	verifier := security.NewJWTVerifier(testSecret)
	gateway := realtime.NewGateway(realtime.NewRegistry(), messages, verifier)

	h := NewHandlerManager(&config.Config{}, matches, messages, gateway)
	api := &testAPI{
		t:      t,
		router: h.Router(verifier, nil, nil),
		store:  store,
		tokens: map[string]string{},
		ids:    map[string]string{},
	}

	api.addUser("alice", models.Skill{Name: "Go", Category: "Programming", Role: models.SkillRoleTeach},
		models.Skill{Name: "Guitar", Category: "Music", Role: models.SkillRoleLearn})
	api.addUser("bob", models.Skill{Name: "Piano", Category: "Music", Role: models.SkillRoleTeach},
		models.Skill{Name: "Rust", Category: "Programming", Role: models.SkillRoleLearn})
	api.addUser("carol")
	return api
}

func (a *testAPI) addUser(name string, skills ...models.Skill) {
	ctx := context.Background()
	user := &models.User{Name: name}
	require.NoError(a.t, a.store.CreateUser(ctx, user))
	for _, sk := range skills {
		sk.UserID = user.ID
		require.NoError(a.t, a.store.CreateSkill(ctx, &sk))
	}
	token, err := security.GenerateJWT(user.ID, "", testSecret, time.Hour)
	require.NoError(a.t, err)
	a.ids[name] = user.ID
	a.tokens[name] = token
}

func (a *testAPI) do(as, method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[as])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHealthIsPublic(t *testing.T) {
	api := newTestAPI(t)
	code, env := api.do("", http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
}

func TestRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t)
	code, env := api.do("", http.MethodGet, "/api/matches", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error)
}

func TestRequestAcceptFlow(t *testing.T) {
	api := newTestAPI(t)
	alice, bob := api.ids["alice"], api.ids["bob"]

	code, env := api.do("alice", http.MethodGet, "/api/matches/potential", nil)
	require.Equal(t, http.StatusOK, code)
	var potential []services.PotentialMatch
	require.NoError(t, json.Unmarshal(env.Data, &potential))
	require.Len(t, potential, 1)
	assert.Equal(t, bob, potential[0].UserID)

	code, env = api.do("alice", http.MethodPost, "/api/matches/request", map[string]string{"recipientId": bob, "message": "swap?"})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Status)

	code, env = api.do("alice", http.MethodPost, "/api/matches/request", map[string]string{"recipientId": bob})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error)

	code, env = api.do("bob", http.MethodGet, "/api/matches/requests/incoming", nil)
	require.Equal(t, http.StatusOK, code)
	var incoming []services.RequestSummary
	require.NoError(t, json.Unmarshal(env.Data, &incoming))
	require.Len(t, incoming, 1)
	assert.Equal(t, alice, incoming[0].UserID)

	code, env = api.do("alice", http.MethodPost, "/api/matches/accept/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, code, "sender cannot accept")
	assert.Equal(t, "NOT_FOUND_OR_UNAUTHORIZED", env.Error)

	code, env = api.do("bob", http.MethodPost, "/api/matches/accept/"+created.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"matched"`)

	code, env = api.do("alice", http.MethodGet, "/api/matches/status/"+bob, nil)
	require.Equal(t, http.StatusOK, code)
	var status services.RelationshipStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.IsMatched)

	code, env = api.do("alice", http.MethodGet, "/api/matches", nil)
	require.Equal(t, http.StatusOK, code)
	var matches []services.MatchSummary
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].UserName)
}

func TestDeclineAndCancel(t *testing.T) {
	api := newTestAPI(t)
	bob := api.ids["bob"]

	_, env := api.do("carol", http.MethodPost, "/api/matches/request", map[string]string{"recipientId": bob})
	var created struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env := api.do("bob", http.MethodPost, "/api/matches/decline/"+created.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"declined"`)

	_, env = api.do("carol", http.MethodPost, "/api/matches/request", map[string]string{"recipientId": bob})
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, _ = api.do("bob", http.MethodDelete, "/api/matches/requests/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, code, "only the sender cancels")

	code, _ = api.do("carol", http.MethodDelete, "/api/matches/requests/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do("carol", http.MethodGet, "/api/matches/status/"+bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"none"`)

	code, _ = api.do("carol", http.MethodGet, "/api/matches/requests/outgoing", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCreateRequestValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{name: "Missing recipient", body: map[string]string{}, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "Unknown recipient", body: map[string]string{"recipientId": "ghost"}, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "Self", body: map[string]string{"recipientId": api.ids["alice"]}, wantStatus: http.StatusConflict, wantCode: "INVALID_STATE"},
		{name: "Not JSON object", body: []int{1}, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := api.do("alice", http.MethodPost, "/api/matches/request", tt.body)
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantCode, env.Error)
		})
	}
}

func TestMessagesAndPresence(t *testing.T) {
	api := newTestAPI(t)
	alice, bob := api.ids["alice"], api.ids["bob"]
	ctx := context.Background()

	for _, content := range []string{"one", "two"} {
		require.NoError(t, api.store.CreateMessage(ctx, &models.Message{SenderID: alice, ReceiverID: bob, Content: content}))
	}

	code, env := api.do("bob", http.MethodGet, "/api/messages/"+alice, nil)
	require.Equal(t, http.StatusOK, code)
	var history []models.Message
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "one", history[0].Content)

	code, env = api.do("bob", http.MethodPost, "/api/messages/read/"+alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"count":2`)

	code, env = api.do("bob", http.MethodGet, "/api/users/"+alice+"/presence", nil)
	require.Equal(t, http.StatusOK, code)
	var presence models.PresenceState
	require.NoError(t, json.Unmarshal(env.Data, &presence))
	assert.Equal(t, models.PresenceOffline, presence.Status)
}
