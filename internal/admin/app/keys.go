package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
)

// ErrSameSecrets is returned when access and refresh tokens would share a
// signing secret.
var ErrSameSecrets = errors.New("JWT_SECRET and REFRESH_SECRET must differ")

// InitTokenKeys builds the access and refresh signing keys.
//
// Secrets left unset are generated for this process only ("ephemeral" mode):
// every token minted by a previous run stops verifying after a restart.
func InitTokenKeys(cfg Config, logger *slog.Logger) (access, refresh *jwtx.HMACKey, err error) {
	accessSecret, err := secretOrGenerate(cfg.JWTSecret, "JWT_SECRET", logger)
	if err != nil {
		return nil, nil, err
	}
	refreshSecret, err := secretOrGenerate(cfg.RefreshSecret, "REFRESH_SECRET", logger)
	if err != nil {
		return nil, nil, err
	}
	if accessSecret == refreshSecret {
		return nil, nil, ErrSameSecrets
	}

	access, err = jwtx.NewHMACKey([]byte(accessSecret), 0)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid JWT_SECRET: %w", err)
	}
	refresh, err = jwtx.NewHMACKey([]byte(refreshSecret), 0)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REFRESH_SECRET: %w", err)
	}
	return access, refresh, nil
}

func secretOrGenerate(secret, name string, logger *slog.Logger) (string, error) {
	if secret != "" {
		return secret, nil
	}

	generated, err := cryptox.GenerateSecret(cryptox.SecretSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", name, err)
	}
	logger.Warn("signing secret not configured, generated an ephemeral one",
		slog.String("variable", name),
	)
	return generated, nil
}
