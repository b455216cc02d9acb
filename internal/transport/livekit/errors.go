package livekit

import "errors"

var errDisconnected = errors.New("room connection lost")
