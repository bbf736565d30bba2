package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/metrics"
)

const datasetType = "chat-finetune-input"

// Client talks to the model provider's HTTP API. The platform credential is
// fixed at construction; Chat accepts the credential per call so byok requests
// carry the caller's key instead.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	metrics    *metrics.Metrics
}

func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.Metrics) *Client {
	settings := gobreaker.Settings{
		Name:        "provider",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state change")
			if m != nil {
				m.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			}
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		breaker:    gobreaker.NewCircuitBreaker[*http.Response](settings),
		metrics:    m,
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

type chatRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type chatResponse struct {
	Text string `json:"text"`
	Meta struct {
		BilledUnits struct {
			InputTokens int64 `json:"input_tokens"`
		} `json:"billed_units"`
	} `json:"meta"`
}

func (c *Client) Chat(ctx context.Context, apiKey, model, message string) (*domain.ChatReply, error) {
	body, err := json.Marshal(chatRequest{Model: model, Message: message})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do("chat", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	return &domain.ChatReply{
		Text:       out.Text,
		TokensUsed: out.Meta.BilledUnits.InputTokens,
	}, nil
}

func (c *Client) CreateDataset(ctx context.Context, name, filename string, data io.Reader) (*domain.ProviderDataset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("data", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("copy dataset file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	// name and type travel as query parameters, the file as form data.
	u := fmt.Sprintf("%s/v1/datasets?name=%s&type=%s",
		c.baseURL, url.QueryEscape(name), url.QueryEscape(datasetType))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do("create_dataset", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.apiError(resp)
	}

	var out domain.ProviderDataset
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode dataset response: %w", err)
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

func (c *Client) ListDatasets(ctx context.Context) ([]domain.ProviderDataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/datasets", nil)
	if err != nil {
		return nil, fmt.Errorf("create list datasets request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.do("list_datasets", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var out struct {
		Datasets []domain.ProviderDataset `json:"datasets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode datasets response: %w", err)
	}
	if out.Datasets == nil {
		out.Datasets = []domain.ProviderDataset{}
	}
	return out.Datasets, nil
}

func (c *Client) DeleteDataset(ctx context.Context, id string) error {
	u := fmt.Sprintf("%s/v1/datasets/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create delete dataset request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.do("delete_dataset", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.apiError(resp)
	}
	return nil
}

type finetunedModelEnvelope struct {
	FinetunedModel finetunedModel `json:"finetuned_model"`
}

type finetunedModel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Settings  struct {
		DatasetID string `json:"dataset_id"`
		BaseModel struct {
			BaseType string `json:"base_type"`
			Name     string `json:"name"`
		} `json:"base_model"`
	} `json:"settings"`
}

func (m finetunedModel) toDomain() domain.ProviderModel {
	base := m.Settings.BaseModel.Name
	if base == "" {
		base = m.Settings.BaseModel.BaseType
	}
	return domain.ProviderModel{
		ID:        m.ID,
		Name:      m.Name,
		Status:    m.Status,
		BaseModel: base,
		DatasetID: m.Settings.DatasetID,
		CreatedAt: m.CreatedAt,
	}
}

func (c *Client) CreateFinetunedModel(ctx context.Context, name, baseModel, datasetID string) (*domain.ProviderModel, error) {
	payload := map[string]interface{}{
		"name": name,
		"settings": map[string]interface{}{
			"base_model": map[string]string{
				"base_type": "BASE_TYPE_CHAT",
				"name":      baseModel,
			},
			"dataset_id": datasetID,
			"hyperparameters": map[string]interface{}{
				"early_stopping_patience":  10,
				"early_stopping_threshold": 0.001,
				"train_batch_size":         16,
				"train_epochs":             1,
				"learning_rate":            0.01,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal finetune request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/finetuning/finetuned-models", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create finetune request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do("create_finetuned_model", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.apiError(resp)
	}

	var out finetunedModelEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode finetune response: %w", err)
	}
	model := out.FinetunedModel.toDomain()
	return &model, nil
}

func (c *Client) GetFinetunedModel(ctx context.Context, id string) (*domain.ProviderModel, error) {
	u := fmt.Sprintf("%s/v1/finetuning/finetuned-models/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create get model request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.do("get_finetuned_model", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var out finetunedModelEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode get model response: %w", err)
	}
	model := out.FinetunedModel.toDomain()
	return &model, nil
}

func (c *Client) ListFinetunedModels(ctx context.Context) ([]domain.ProviderModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/finetuning/finetuned-models", nil)
	if err != nil {
		return nil, fmt.Errorf("create list models request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.do("list_finetuned_models", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var out struct {
		FinetunedModels []finetunedModel `json:"finetuned_models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode list models response: %w", err)
	}

	models := make([]domain.ProviderModel, 0, len(out.FinetunedModels))
	for _, m := range out.FinetunedModels {
		models = append(models, m.toDomain())
	}
	return models, nil
}

// Ping probes the provider's model listing endpoint for health checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.do("ping", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

// do executes the request through the circuit breaker. Only transport-level
// failures count against the breaker; HTTP error statuses are classified by
// the caller via apiError.
func (c *Client) do(endpoint string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		c.metrics.ObserveProvider(endpoint, "error", time.Since(start))
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", domain.ErrUpstreamUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	outcome := "ok"
	if resp.StatusCode >= 400 {
		outcome = "error"
	}
	c.metrics.ObserveProvider(endpoint, outcome, time.Since(start))

	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}).Debug("provider call completed")

	return resp, nil
}

// apiError classifies a non-2xx provider response into the domain taxonomy.
// Status codes decide first; the message text breaks ties for providers that
// return errors under generic statuses.
func (c *Client) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrInvalidProviderKey
	case http.StatusNotFound:
		return domain.ErrProviderModelNotFound
	case http.StatusTooManyRequests:
		return domain.ErrProviderRateLimited
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "api key"):
		return domain.ErrInvalidProviderKey
	case strings.Contains(lower, "rate limit"):
		return domain.ErrProviderRateLimited
	case strings.Contains(lower, "model"):
		return domain.ErrProviderModelNotFound
	}

	return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, msg)
}
