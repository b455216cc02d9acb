package installer

// NewLiveKitSteps asks for the server credentials and the room to join.
// They are skipped unless the LiveKit channel is enabled.
func NewLiveKitSteps() []Step {
	serverURL := newInputStep("LIVEKIT_URL", "LiveKit server URL", "wss://your-project.livekit.cloud", false)
	serverURL.validate = validateURL("wss", "ws", "https", "http")

	apiKey := newInputStep("LIVEKIT_API_KEY", "LiveKit API key", "APIxxxxxxxxxxxx", false)
	apiSecret := newInputStep("LIVEKIT_API_SECRET", "LiveKit API secret", "", true)

	room := newInputStep("LIVEKIT_ROOM", "room to join", "chat-room", false)
	room.fallback = "chat-room"

	identity := newInputStep("LIVEKIT_IDENTITY", "bot identity in the room", "gemini-agent", false)
	identity.fallback = "gemini-agent"

	steps := []*InputStep{serverURL, apiKey, apiSecret, room, identity}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.when = enabled("ENABLE_LIVEKIT")
		out[i] = s
	}
	return out
}
