package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finetune-gateway/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "platform-key", 5*time.Second, nil)
}

func TestClient_Chat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer caller-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ft-abc", req["model"])
		assert.Equal(t, "hello", req["message"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text": "hi there", "meta": {"billed_units": {"input_tokens": 7}}}`)
	})

	reply, err := c.Chat(context.Background(), "caller-key", "ft-abc", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply.Text)
	assert.Equal(t, int64(7), reply.TokensUsed)
}

func TestClient_Chat_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message": "invalid api token"}`)
	})

	_, err := c.Chat(context.Background(), "bad-key", "ft-abc", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidProviderKey)
}

func TestClient_Chat_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Chat(context.Background(), "k", "ft-abc", "hello")
	assert.ErrorIs(t, err, domain.ErrProviderRateLimited)
}

func TestClient_Chat_ModelNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Chat(context.Background(), "k", "nope", "hello")
	assert.ErrorIs(t, err, domain.ErrProviderModelNotFound)
}

func TestClient_Chat_MessageFallbackClassification(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message": "invalid api key supplied"}`)
	})

	_, err := c.Chat(context.Background(), "k", "ft-abc", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidProviderKey)
}

func TestClient_Chat_UpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	})

	_, err := c.Chat(context.Background(), "k", "ft-abc", "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_CreateDataset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/datasets", r.URL.Path)
		assert.Equal(t, "train-set", r.URL.Query().Get("name"))
		assert.Equal(t, "chat-finetune-input", r.URL.Query().Get("type"))
		assert.Equal(t, "Bearer platform-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("data")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "train.jsonl", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, `{"messages": []}`, string(content))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "ds-1", "validation_status": "validated"}`)
	})

	ds, err := c.CreateDataset(context.Background(), "train-set", "train.jsonl", strings.NewReader(`{"messages": []}`))
	require.NoError(t, err)
	assert.Equal(t, "ds-1", ds.ID)
	assert.Equal(t, "validated", ds.ValidationStatus)
}

func TestClient_CreateDataset_FillsName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "ds-1"}`)
	})

	ds, err := c.CreateDataset(context.Background(), "train-set", "train.jsonl", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "ds-1", ds.ID)
	assert.Equal(t, "train-set", ds.Name)
}

func TestClient_ListDatasets_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	datasets, err := c.ListDatasets(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, datasets)
	assert.Empty(t, datasets)
}

func TestClient_CreateFinetunedModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finetuning/finetuned-models", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "my-model", req["name"])
		settings := req["settings"].(map[string]interface{})
		base := settings["base_model"].(map[string]interface{})
		assert.Equal(t, "BASE_TYPE_CHAT", base["base_type"])
		assert.Equal(t, "command-r", base["name"])
		assert.Equal(t, "ds-1", settings["dataset_id"])
		assert.Contains(t, settings, "hyperparameters")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"finetuned_model": {"id": "ft-1", "name": "my-model", "status": "STATUS_QUEUED",
			"settings": {"dataset_id": "ds-1", "base_model": {"base_type": "BASE_TYPE_CHAT", "name": "command-r"}}}}`)
	})

	pm, err := c.CreateFinetunedModel(context.Background(), "my-model", "command-r", "ds-1")
	require.NoError(t, err)
	assert.Equal(t, "ft-1", pm.ID)
	assert.Equal(t, "STATUS_QUEUED", pm.Status)
	assert.Equal(t, "command-r", pm.BaseModel)
	assert.Equal(t, "ds-1", pm.DatasetID)
}

func TestClient_GetFinetunedModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finetuning/finetuned-models/ft-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"finetuned_model": {"id": "ft-1", "status": "STATUS_READY"}}`)
	})

	pm, err := c.GetFinetunedModel(context.Background(), "ft-1")
	require.NoError(t, err)
	assert.Equal(t, "STATUS_READY", pm.Status)
}

func TestClient_ListFinetunedModels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"finetuned_models": [{"id": "ft-1"}, {"id": "ft-2"}]}`)
	})

	models, err := c.ListFinetunedModels(context.Background())
	require.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	// Point at a closed listener so every call is a transport failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, "k", 100*time.Millisecond, nil)

	var err error
	for i := 0; i < 10; i++ {
		err = c.Ping(context.Background())
		assert.Error(t, err)
	}
	// After enough consecutive transport failures the breaker short-circuits.
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
