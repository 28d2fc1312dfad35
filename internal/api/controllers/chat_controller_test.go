package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"superagent/internal/models/chat_models"
	"superagent/internal/services"
	mem "superagent/pkg/memcache"
	"superagent/pkg/middleware"
	"superagent/pkg/utils"
)

const testCookie = "chat_session"

type recordingCompletion struct {
	mu       sync.Mutex
	sessions []chat_models.Session
}

func (r *recordingCompletion) Complete(ctx context.Context, s chat_models.Session) services.CompletionOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, s)
	return services.CompletionOutcome{}
}

type testServer struct {
	engine     *gin.Engine
	completion *recordingCompletion
}

func newTestServer() testServer {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

	completion := &recordingCompletion{}
	store := mem.NewCacheSessionStore(time.Hour, 0)
	chat := services.NewChatService(store, completion, utils.FixedClock(now), "60168357258", zap.NewNop())
	ctrl := NewChatController(chat, utils.FixedClock(now), zap.NewNop())

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	RegisterRoutes(r, ctrl, testCookie)
	return testServer{engine: r, completion: completion}
}

type reply struct {
	code    int
	body    map[string]interface{}
	session string
}

func (s testServer) post(t *testing.T, session, path, body string) reply {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	out := reply{code: w.Code, session: w.Header().Get(middleware.SessionHeader)}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out.body), w.Body.String())
	}
	return out
}

func TestChatController_FullFlow(t *testing.T) {
	s := newTestServer()

	res := s.post(t, "", "/submit_name", `{"name":"Alice"}`)
	require.Equal(t, http.StatusOK, res.code)
	require.NotEmpty(t, res.session)
	assert.Contains(t, res.body["message"], "Hello Alice!")
	key := res.session

	res = s.post(t, key, "/submit_dob", `{"dob":"10/05/1990"}`)
	assert.Equal(t, false, res.body["blocked"])
	assert.Contains(t, res.body["message"], "35 years old")

	s.post(t, key, "/select_insurance", `{"insurance":2}`)
	s.post(t, key, "/select_timing", `{"timing":"1"}`)
	s.post(t, key, "/select_income", `{"income":3}`)
	res = s.post(t, key, "/submit_phone", `{"phone":"+60123456789"}`)
	assert.Contains(t, res.body["message"], "Perlindungan Combo")

	res = s.post(t, key, "/acknowledge_plan", ``)
	assert.Equal(t, "May I know which level of protection do you want?", res.body["message"])

	res = s.post(t, key, "/select_preference", `{"level":3}`)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "Comprehensive", res.body["plan"])
	assert.Equal(t, float64(300), res.body["premium"])
	assert.Equal(t, "200,000", res.body["life"])
	assert.Equal(t, "100,000", res.body["critical"])
	assert.Equal(t, "1,000,000", res.body["medical"])

	s.post(t, key, "/submit_email", `{"email":"alice@example.com"}`)
	res = s.post(t, key, "/select_signup", `{"interested":true}`)
	assert.Contains(t, res.body["message"], "Thank you for contacting us.")

	require.Len(t, s.completion.sessions, 1)
	done := s.completion.sessions[0]
	assert.Equal(t, chat_models.ChoiceTwo, done.Insurance)
	assert.Equal(t, "true", done.SignupInterest)
	assert.Equal(t, chat_models.PlanComprehensive, done.PlanID)
}

func TestChatController_BlockedAge(t *testing.T) {
	s := newTestServer()
	key := s.post(t, "", "/submit_name", `{"name":"Kid"}`).session

	res := s.post(t, key, "/submit_dob", `{"dob":"01/01/2015"}`)
	assert.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, true, res.body["blocked"])
	assert.Contains(t, res.body["message"], "aged 18 and above")

	res = s.post(t, key, "/select_insurance", `{"insurance":1}`)
	assert.Contains(t, res.body["error"], "conversation has ended")
}

func TestChatController_Rejections(t *testing.T) {
	s := newTestServer()
	key := s.post(t, "", "/submit_name", `{"name":"Alice"}`).session

	res := s.post(t, key, "/submit_dob", `{"dob":"1990-05-10"}`)
	assert.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "Please enter date in DD/MM/YYYY format.", res.body["error"])
	assert.NotContains(t, res.body, "blocked")

	res = s.post(t, key, "/submit_phone", `{"phone":"0123456789"}`)
	assert.Equal(t, "Please answer the current question first.", res.body["error"])

	res = s.post(t, key, "/submit_dob", `{"dob":`)
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "Invalid request format", res.body["error"])

	res = s.post(t, key, "/select_insurance", `{"insurance":{"a":1}}`)
	assert.Equal(t, http.StatusBadRequest, res.code)
}

func TestChatController_UnknownPlanIs400(t *testing.T) {
	s := newTestServer()
	key := s.post(t, "", "/submit_name", `{"name":"Alice"}`).session
	s.post(t, key, "/submit_dob", `{"dob":"10/05/1990"}`)
	s.post(t, key, "/select_insurance", `{"insurance":1}`)
	s.post(t, key, "/select_timing", `{"timing":1}`)
	s.post(t, key, "/select_income", `{"income":1}`)
	s.post(t, key, "/submit_phone", `{"phone":"0123456789"}`)
	s.post(t, key, "/acknowledge_plan", `{}`)

	res := s.post(t, key, "/select_preference", `{"level":4}`)
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "Please choose a plan between 1 and 3.", res.body["error"])

	res = s.post(t, key, "/select_preference", `{"level":"1"}`)
	assert.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "Standard", res.body["plan"])
}

func TestChatController_UnknownSession(t *testing.T) {
	s := newTestServer()

	res := s.post(t, "", "/submit_dob", `{"dob":"10/05/1990"}`)
	assert.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.body["error"], "session has expired")
}

func TestChatController_SessionCookie(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/submit_name", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodPost, "/submit_dob", strings.NewReader(`{"dob":"10/05/1990"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "35 years old")
	assert.Equal(t, cookies[0].Value, w.Header().Get(middleware.SessionHeader))
}

func TestChatController_Health(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","time":"2026-01-15T10:00:00Z"}`, w.Body.String())
	assert.Empty(t, w.Header().Get(middleware.SessionHeader))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestChatController_FlowWithoutAcknowledgePlan(t *testing.T) {
	s := newTestServer()
	key := s.post(t, "", "/submit_name", `{"name":"Alice"}`).session

	steps := []struct {
		path string
		body string
	}{
		{"/submit_dob", `{"dob":"10/05/1990"}`},
		{"/select_insurance", `{"insurance":2}`},
		{"/select_timing", `{"timing":1}`},
		{"/select_income", `{"income":3}`},
		{"/submit_phone", `{"phone":"+60123456789"}`},
		{"/select_preference", `{"level":1}`},
		{"/submit_email", `{"email":"alice@example.com"}`},
		{"/select_signup", `{"interested":"yes"}`},
	}
	for _, st := range steps {
		res := s.post(t, key, st.path, st.body)
		require.Equal(t, http.StatusOK, res.code, st.path)
		require.NotContains(t, res.body, "error", "%s -> %v", st.path, res.body)
		if st.path == "/select_preference" {
			assert.Equal(t, "Standard", res.body["plan"])
			assert.Equal(t, float64(160), res.body["premium"])
		}
	}

	require.Len(t, s.completion.sessions, 1)
	done := s.completion.sessions[0]
	assert.Equal(t, chat_models.PlanStandard, done.PlanID)
	assert.Equal(t, "yes", done.SignupInterest)
	assert.Equal(t, chat_models.StepCompleted, done.CurrentStep)
}
