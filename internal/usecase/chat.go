package usecase

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
)

// ChatUseCase is the gateway dispatcher: it validates the request, resolves
// the credential and provider model id for the chosen access method, enforces
// the usage ceiling, performs the outbound call and records usage.
type ChatUseCase struct {
	models      domain.ManagedModelRepository
	ledger      *LedgerUseCase
	provider    domain.ProviderClient
	platformKey string
}

func NewChatUseCase(models domain.ManagedModelRepository, ledger *LedgerUseCase, provider domain.ProviderClient, platformKey string) *ChatUseCase {
	return &ChatUseCase{
		models:      models,
		ledger:      ledger,
		provider:    provider,
		platformKey: platformKey,
	}
}

// Dispatch runs one chat request to completion. Side effects are strictly
// ordered: the ceiling is checked before the outbound call, usage is recorded
// only after it succeeds, and byok requests are never metered.
func (uc *ChatUseCase) Dispatch(ctx context.Context, ownerID uuid.UUID, req domain.AccessRequest) (*domain.ChatResult, error) {
	if req.ModelID == "" || req.Message == "" {
		return nil, domain.ErrMissingChatFields
	}
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	method := req.AccessMethod
	if method == "" {
		method = domain.AccessMethodProxy
	}

	key, err := ResolveCredential(method, req.CallerKey, uc.platformKey)
	if err != nil {
		return nil, err
	}

	var (
		providerModelID = req.ModelID
		model           *domain.ManagedModel
	)

	if method == domain.AccessMethodProxy {
		internalID, err := uuid.Parse(req.ModelID)
		if err != nil {
			// Not a valid internal handle; indistinguishable from a miss.
			return nil, domain.ErrModelNotFound
		}

		model, err = uc.models.GetByIDAndOwner(ctx, internalID, ownerID)
		if err != nil {
			return nil, err
		}

		if err := uc.ledger.CheckCeiling(model.UsageCount, model.UsageLimit); err != nil {
			return nil, err
		}
		providerModelID = model.ProviderModelID
	}

	reply, err := uc.provider.Chat(ctx, key, providerModelID, req.Message)
	if err != nil {
		return nil, err
	}

	result := &domain.ChatResult{
		Response:     reply.Text,
		ModelID:      providerModelID,
		AccessMethod: method,
	}

	if method == domain.AccessMethodProxy {
		newCount, err := uc.ledger.RecordUsage(ctx, model.ID, ownerID, reply.TokensUsed)
		if err != nil {
			// The provider call already succeeded; surface the response
			// and account for this call when computing what remains.
			log.WithError(err).WithField("model_id", model.ID).Warn("record usage failed")
			newCount = model.UsageCount + 1
		}

		usage := &domain.UsageInfo{TokensUsed: reply.TokensUsed}
		if model.UsageLimit > 0 {
			remaining := model.UsageLimit - newCount
			if remaining < 0 {
				remaining = 0
			}
			usage.RemainingCalls = &remaining
		}
		result.Usage = usage
	}

	return result, nil
}
