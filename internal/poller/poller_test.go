package poller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPayloadRoundTrip(t *testing.T) {
	payload := CheckPayload{League: "nba", ExternalGameID: "401766123", Retries: 2}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded CheckPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestHandleTaskRejectsBadPayload(t *testing.T) {
	p := New(Config{})

	assert.Error(t, p.HandleTask(context.Background(), []byte("not json")))
	assert.Error(t, p.HandleTask(context.Background(), []byte(`{"league":"curling","external_game_id":"1"}`)))
}
