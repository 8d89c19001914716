package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRequire(t *testing.T) {
	ctx := context.Background()

	token, err := Require(ctx, Static(" tok "))
	require.NoError(t, err)
	require.Equal(t, "tok", token)

	_, err = Require(ctx, Static(""))
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = Require(ctx, nil)
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = Require(ctx, Func(func(context.Context) (string, error) {
		return "", errors.New("signed out")
	}))
	require.ErrorIs(t, err, ErrMissingToken)
	require.Contains(t, err.Error(), "signed out")
}

type countingSource struct {
	calls int
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	s.calls++
	return &oauth2.Token{AccessToken: "short-lived", Expiry: time.Now().Add(time.Hour)}, nil
}

func TestFromTokenSource_ReusesUntilExpiry(t *testing.T) {
	src := &countingSource{}
	p := FromTokenSource(src)

	for i := 0; i < 3; i++ {
		token, err := Require(context.Background(), p)
		require.NoError(t, err)
		require.Equal(t, "short-lived", token)
	}
	require.Equal(t, 1, src.calls)
}
