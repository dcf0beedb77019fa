package app

import (
	"fmt"
	"log/slog"

	"github.com/hearthhq/hearth/pkg/cryptox"
	"github.com/hearthhq/hearth/pkg/jwtx"
)

// InitKeys builds the HS256 KeyManager from the configured secrets.
//
// Without HOME_JWT_SECRET a random secret is generated, so every token
// becomes invalid when the process restarts.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		generated, err := cryptox.GenerateBytes(cryptox.TokenSize256)
		if err != nil {
			return nil, fmt.Errorf("generate signing secret: %w", err)
		}
		secret = generated
		logger.Warn("HOME_JWT_SECRET not set; using an ephemeral signing secret, tokens will not survive a restart")
	}

	previous := make([][]byte, 0, len(cfg.JWTPreviousSecrets))
	for _, s := range cfg.JWTPreviousSecrets {
		previous = append(previous, []byte(s))
	}

	km, err := jwtx.NewHMACKeyManager(jwtx.KeyManagerOptions{
		Secret:          secret,
		PreviousSecrets: previous,
		Issuer:          cfg.Issuer,
		Audience:        cfg.Audience,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize key manager: %w", err)
	}

	logger.Info("signing keys loaded",
		slog.String("kid", km.Signer().KID()),
		slog.Int("verification_keys", len(km.KeySet.KIDs())),
	)
	return km, nil
}
