package middleware

import (
	"testing"

	"atm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type stubChecker map[int64]bool

func (s stubChecker) IsAuthenticated(userID int64) bool {
	return s[userID]
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name             string
		ctx              *testutil.FakeContext
		authenticated    bool
		expectNext       bool
		expectedResponds int
	}{
		{
			name:          "authenticated button press",
			ctx:           testutil.NewFakeCallback(1, "withdraw"),
			authenticated: true,
			expectNext:    true,
		},
		{
			name:             "button press without session",
			ctx:              testutil.NewFakeCallback(1, "withdraw"),
			expectedResponds: 1,
		},
		{
			name: "message without session",
			ctx:  testutil.NewFakeContext(1, "withdraw"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			mw := SessionMiddleware(stubChecker{1: tt.authenticated}, testutil.NewTestLogger())
			require.NoError(t, mw(next)(tt.ctx))

			assert.Equal(t, tt.expectNext, called)
			assert.Equal(t, tt.expectedResponds, tt.ctx.Responds)
			if tt.expectNext {
				assert.Empty(t, tt.ctx.Sends)
			} else {
				assert.Equal(t, []string{PromptPIN}, tt.ctx.SentTexts())
			}
		})
	}
}
