package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finetune-gateway/internal/domain"
)

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestContract_RegisterAndGetModel(t *testing.T) {
	ownerID := uuid.New()
	models, _, _, _, r := setupRouter(ownerID)

	models.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/v1/models", map[string]interface{}{
		"name":              "support-bot",
		"provider_model_id": "ft-abc",
		"usage_limit":       100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "support-bot", resp["name"])
	assert.Equal(t, "ft-abc", resp["provider_model_id"])
	assert.Equal(t, float64(100), resp["usage_limit"])
	assert.Equal(t, float64(0), resp["usage_count"])
	assert.Nil(t, resp["last_used_at"])
	assert.Contains(t, resp, "id")
	assert.Contains(t, resp, "created_at")

	id, err := uuid.Parse(resp["id"].(string))
	require.NoError(t, err)

	stored := &domain.ManagedModel{ID: id, OwnerID: ownerID, Name: "support-bot", ProviderModelID: "ft-abc", UsageLimit: 100}
	models.On("GetByIDAndOwner", mock.Anything, id, ownerID).Return(stored, nil)

	w = doJSON(r, http.MethodGet, "/api/v1/models/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	assert.Equal(t, id.String(), resp["id"])
}

func TestContract_GetModel_BadID(t *testing.T) {
	_, _, _, _, r := setupRouter(uuid.New())

	w := doJSON(r, http.MethodGet, "/api/v1/models/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Model not found or access denied", resp["error"])
}

func TestContract_ListModels(t *testing.T) {
	ownerID := uuid.New()
	models, _, _, _, r := setupRouter(ownerID)

	now := time.Now()
	stored := []*domain.ManagedModel{
		{ID: uuid.New(), OwnerID: ownerID, Name: "m1", ProviderModelID: "ft-1", CreatedAt: now, UpdatedAt: now},
	}
	models.On("ListByOwner", mock.Anything, ownerID).Return(stored, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/models", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	items, ok := resp["models"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "m1", first["name"])
}

func TestContract_DeleteModel(t *testing.T) {
	ownerID := uuid.New()
	models, _, _, _, r := setupRouter(ownerID)

	id := uuid.New()
	models.On("Delete", mock.Anything, id, ownerID).Return(nil)

	w := doJSON(r, http.MethodDelete, "/api/v1/models/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "deleted", resp["status"])
}

func TestContract_UploadDataset(t *testing.T) {
	_, _, provider, _, r := setupRouter(uuid.New())

	provider.On("CreateDataset", mock.Anything, "train-set", "train.jsonl", mock.Anything).
		Return(&domain.ProviderDataset{ID: "ds-1", Name: "train-set", Type: "chat-finetune-input", ValidationStatus: "validated"}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "train-set"))
	fw, err := mw.CreateFormFile("file", "train.jsonl")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"messages": []}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	ds, ok := resp["dataset"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ds-1", ds["id"])
	assert.Equal(t, "train-set", ds["name"])
}

func TestContract_UploadDataset_MissingFile(t *testing.T) {
	_, _, _, _, r := setupRouter(uuid.New())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "train-set"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Missing file or name", resp["error"])
}

func TestContract_CreateFinetune(t *testing.T) {
	ownerID := uuid.New()
	_, _, provider, jobs, r := setupRouter(ownerID)

	provider.On("CreateFinetunedModel", mock.Anything, "my-model", "command-r", "ds-1").
		Return(&domain.ProviderModel{ID: "ft-1", Name: "my-model", Status: "STATUS_QUEUED", BaseModel: "command-r", DatasetID: "ds-1"}, nil)
	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/v1/fine-tune", map[string]interface{}{
		"dataset_id": "ds-1",
		"model_name": "my-model",
		"base_model": "command-r",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	model, ok := resp["model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ft-1", model["id"])
	assert.Equal(t, "STATUS_QUEUED", model["status"])
}

func TestContract_CreateFinetune_MissingFields(t *testing.T) {
	_, _, _, _, r := setupRouter(uuid.New())

	w := doJSON(r, http.MethodPost, "/api/v1/fine-tune", map[string]interface{}{"dataset_id": "ds-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Missing required fields: datasetId, modelName, baseModel", resp["error"])
}

func TestContract_GetFinetune(t *testing.T) {
	ownerID := uuid.New()
	_, _, provider, jobs, r := setupRouter(ownerID)

	provider.On("GetFinetunedModel", mock.Anything, "ft-1").
		Return(&domain.ProviderModel{ID: "ft-1", Status: "STATUS_READY"}, nil)
	jobs.On("UpdateStatusForOwner", mock.Anything, "ft-1", ownerID, domain.JobStatusReady).Return(nil)

	w := doJSON(r, http.MethodGet, "/api/v1/fine-tune/ft-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	model, ok := resp["model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "STATUS_READY", model["status"])
}

func TestContract_ListTrainingJobs(t *testing.T) {
	ownerID := uuid.New()
	_, _, _, jobs, r := setupRouter(ownerID)

	now := time.Now()
	stored := []*domain.TrainingJob{
		{ID: uuid.New(), OwnerID: ownerID, JobID: "ft-1", Name: "m", BaseModel: "command-r", DatasetID: "ds-1", Status: domain.JobStatusTraining, CreatedAt: now, UpdatedAt: now},
	}
	jobs.On("ListByOwner", mock.Anything, ownerID).Return(stored, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/fine-tune", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	items, ok := resp["jobs"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "ft-1", first["job_id"])
	assert.Equal(t, "training", first["status"])
}

func TestContract_ListUsage(t *testing.T) {
	ownerID := uuid.New()
	_, logs, _, _, r := setupRouter(ownerID)

	entries := []*domain.UsageLogEntry{
		{ID: uuid.New(), OwnerID: ownerID, ModelID: uuid.New(), AccessMethod: domain.AccessMethodProxy, TokensUsed: 12, CreatedAt: time.Now()},
	}
	logs.On("ListByOwner", mock.Anything, ownerID, 50).Return(entries, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/usage", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	items, ok := resp["usage"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "proxy", first["access_method"])
	assert.Equal(t, float64(12), first["tokens_used"])
	assert.Contains(t, first, "timestamp")
}

func TestContract_ListProviderModels(t *testing.T) {
	_, _, provider, _, r := setupRouter(uuid.New())

	provider.On("ListFinetunedModels", mock.Anything).
		Return([]domain.ProviderModel{{ID: "ft-1", Name: "m1", Status: "STATUS_READY"}}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/provider-models", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	items, ok := resp["models"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
}
