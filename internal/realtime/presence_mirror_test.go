package realtime

import (
	"context"
	"testing"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/redisrepo"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_RedisMirrorRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	repo := redisrepo.NewPresenceRepo(client)

	// gw has no local record of alice, only the mirror does
	other, _ := newTestGateway()
	other.SetPresenceMirror(repo)
	gw, _ := newTestGateway()
	gw.SetPresenceMirror(repo)

	alice := newFakeConn("a1", "alice")
	other.Connect(ctx, alice)

	state := gw.Presence(ctx, "alice")
	assert.Equal(t, models.PresenceOnline, state.Status)
	assert.Zero(t, state.Connections)

	other.Disconnect(ctx, alice)
	state = gw.Presence(ctx, "alice")
	assert.Equal(t, models.PresenceOffline, state.Status)
	require.NotNil(t, state.LastSeen)
}
