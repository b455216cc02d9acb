// Package livekit connects the agent to a LiveKit room over data packets.
package livekit

import (
	"context"
	"fmt"
	"sync"

	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
)

type Room struct {
	cfg        *config.LiveKitConfig
	dispatcher *Dispatcher

	mu   sync.Mutex
	room *lksdk.Room
}

func NewRoom(cfg *config.LiveKitConfig, dispatcher *Dispatcher) *Room {
	return &Room{
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

// Start joins the room and serves it until ctx is cancelled. A failed join
// is returned as a TransportError.
func (r *Room) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("room", r.cfg.Room).Str("identity", r.cfg.Identity).Logger()
	ctx = logger.WithContext(ctx)

	token, err := NewJoinToken(r.cfg)
	if err != nil {
		return &core.TransportError{Op: "token", Err: err}
	}

	logger.Info().Str("url", r.cfg.URL).Msg("connecting to room")
	room, err := lksdk.ConnectToRoomWithToken(r.cfg.URL, token, r.callbacks(ctx), lksdk.WithAutoSubscribe(false))
	if err != nil {
		return &core.TransportError{Op: "connect", Err: err}
	}

	r.mu.Lock()
	r.room = room
	r.mu.Unlock()

	s := &roomSession{room: room}
	logger.Info().Strs("participants", s.Participants()).Msg("connected to room")

	return r.dispatcher.Run(ctx, s)
}

func (r *Room) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.room != nil {
		log.FromCtx(ctx).Info().Str("room", r.cfg.Room).Msg("leaving room")
		r.room.Disconnect()
		r.room = nil
	}
	return nil
}

func (r *Room) callbacks(ctx context.Context) *lksdk.RoomCallback {
	return &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataPacket: func(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
				packet, ok := data.(*lksdk.UserDataPacket)
				if !ok {
					return
				}
				r.dispatcher.OnData(ctx, params.SenderIdentity, packet.Payload, packet.Topic)
			},
		},
		OnParticipantConnected: func(p *lksdk.RemoteParticipant) {
			r.dispatcher.OnParticipantJoined(ctx, p.Identity())
		},
		OnParticipantDisconnected: func(p *lksdk.RemoteParticipant) {
			r.dispatcher.OnParticipantLeft(ctx, p.Identity())
		},
		OnDisconnected: func() {
			r.dispatcher.OnDisconnected(ctx)
		},
	}
}

type roomSession struct {
	room *lksdk.Room
}

// Publish sends data reliably to everyone in the room, or to the given
// identities only.
func (s *roomSession) Publish(data []byte, to ...string) error {
	opts := []lksdk.DataPublishOption{lksdk.WithDataPublishReliable(true)}
	if len(to) > 0 {
		opts = append(opts, lksdk.WithDataPublishDestination(to))
	}
	return s.room.LocalParticipant.PublishDataPacket(lksdk.UserData(data), opts...)
}

func (s *roomSession) Participants() []string {
	remote := s.room.GetRemoteParticipants()
	ids := make([]string, 0, len(remote))
	for _, p := range remote {
		ids = append(ids, p.Identity())
	}
	return ids
}

func (s *roomSession) State() string {
	return fmt.Sprint(s.room.ConnectionState())
}
