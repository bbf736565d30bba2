package usecase

import "finetune-gateway/internal/domain"

// ResolveCredential selects the provider credential for a dispatch. Pure
// selection: the key material is never logged or stored.
func ResolveCredential(method domain.AccessMethod, callerKey, platformKey string) (string, error) {
	switch method {
	case domain.AccessMethodBYOK:
		if callerKey == "" {
			return "", domain.ErrAPIKeyRequired
		}
		return callerKey, nil
	case domain.AccessMethodProxy:
		if platformKey == "" {
			return "", domain.ErrPlatformKeyMissing
		}
		return platformKey, nil
	default:
		return "", domain.ErrUnknownAccessMethod
	}
}
