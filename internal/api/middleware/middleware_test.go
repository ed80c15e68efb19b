package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	mock_service "github.com/RoyceAzure/lab/bookstore/internal/service/mock"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerMiddlewareFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := LoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	ctx := util.WithRequestID(req.Context(), "req-1")
	ctx = util.WithIdentity(ctx, &model.Identity{MemberID: 9, SessionID: "s"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, done map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &done))

	require.Equal(t, "req-1", inside["request_id"])
	require.Equal(t, float64(9), done["member_id"])
	require.Equal(t, float64(http.StatusTeapot), done["status"])
	require.Equal(t, "/api/v1/cart", done["url"])
	require.Contains(t, done, "duration")
}

func TestStatusRecoderDefaultsToOK(t *testing.T) {
	rec := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	require.Equal(t, http.StatusOK, rec.Status())

	_, err := rec.Write([]byte("x"))
	require.NoError(t, err)
	rec.WriteHeader(http.StatusInternalServerError)
	require.Equal(t, http.StatusOK, rec.Status())
}

func TestRequestIdMiddleware(t *testing.T) {
	var got string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEqual(t, "unknown", got)
	require.Equal(t, got, rec.Header().Get(RequestIDHeader))
}

type fixedLimiter bool

func (f fixedLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return bool(f), nil
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	NewRateLimitMiddleware(fixedLimiter(false), "login")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	NewRateLimitMiddleware(fixedLimiter(true), "login")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func withSessionCookie(sid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: sid})
	return req
}

func TestSessionResolvedAfterLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_service.NewMockISessionService(ctrl)
	sessions.EXPECT().Resolve(gomock.Any(), "sid-1").Return(int64(42), nil)

	var buf bytes.Buffer
	var gotMember int64
	chain := LoggerMiddleware(zerolog.New(&buf))(SessionMiddleware(sessions)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMember = util.GetMemberID(r.Context())
		})))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, withSessionCookie("sid-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 42, gotMember)

	var done map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &done))
	require.Equal(t, "request completed", done["message"])
	require.Equal(t, float64(42), done["member_id"])
}

func TestSessionPanicRecoveredByLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_service.NewMockISessionService(ctrl)
	sessions.EXPECT().Resolve(gomock.Any(), "sid-2").DoAndReturn(func(ctx context.Context, sid string) (int64, error) {
		panic("session store exploded")
	})

	var buf bytes.Buffer
	called := false
	chain := LoggerMiddleware(zerolog.New(&buf))(SessionMiddleware(sessions)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { chain.ServeHTTP(rec, withSessionCookie("sid-2")) })
	require.False(t, called)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, buf.String(), "panic recovered")
	require.NotContains(t, buf.String(), "member_id")
}

func TestSessionWithoutRequestLoggerLeavesDefaultUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_service.NewMockISessionService(ctrl)
	sessions.EXPECT().Resolve(gomock.Any(), "sid-3").Return(int64(5), nil)

	var buf bytes.Buffer
	def := zerolog.New(&buf)
	prev := zerolog.DefaultContextLogger
	zerolog.DefaultContextLogger = &def
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })

	h := SessionMiddleware(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), withSessionCookie("sid-3"))

	def.Info().Msg("after")
	require.NotContains(t, buf.String(), "member_id")
}
