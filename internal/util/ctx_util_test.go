package util

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/stretchr/testify/require"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, GetIdentityFromContext(ctx))
	require.Zero(t, GetMemberID(ctx))

	ctx = WithIdentity(ctx, &model.Identity{MemberID: 42, SessionID: "sid"})
	require.Equal(t, int64(42), GetMemberID(ctx))
	require.Equal(t, "sid", GetIdentityFromContext(ctx).SessionID)
}

func TestRequestIDContext(t *testing.T) {
	require.Equal(t, "unknown", GetRequestID(context.Background()))
	require.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:51234"
	require.Equal(t, "10.0.0.7", ClientIP(r))

	r.RemoteAddr = "10.0.0.8"
	require.Equal(t, "10.0.0.8", ClientIP(r))
}
