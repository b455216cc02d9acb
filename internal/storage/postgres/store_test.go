package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_BoundedHistory(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	user := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM interactions WHERE user_id=$1`, user)
	})

	assert.Equal(t, core.FirstConversation(user), s.GetContext(ctx, user, 5))

	for i := 1; i <= 25; i++ {
		s.SaveInteraction(ctx, user, fmt.Sprintf("msg %d", i), fmt.Sprintf("resp %d", i))
	}

	history := s.History(ctx, user)
	require.Len(t, history, core.MaxHistoryPerUser)
	assert.Equal(t, "msg 6", history[0].UserMessage)
	assert.Equal(t, "msg 25", history[len(history)-1].UserMessage)
}
