package livekit

import (
	"fmt"

	"github.com/livekit/protocol/auth"
	"github.com/sandevgo/roombot/internal/config"
)

// NewJoinToken signs an access token that lets identity join room and
// exchange data.
func NewJoinToken(cfg *config.LiveKitConfig) (string, error) {
	allow := true
	at := auth.NewAccessToken(cfg.APIKey, cfg.APISecret)
	at.SetVideoGrant(&auth.VideoGrant{
		RoomJoin:       true,
		Room:           cfg.Room,
		CanPublish:     &allow,
		CanSubscribe:   &allow,
		CanPublishData: &allow,
	}).
		SetIdentity(cfg.Identity).
		SetName(cfg.Identity).
		SetValidFor(cfg.TokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to sign join token: %w", err)
	}
	return token, nil
}
