package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeAuth       MessageType = "auth"
	MessageTypeCreateGame MessageType = "create_game"
	MessageTypeJoinGame   MessageType = "join_game"
	MessageTypeLeaveGame  MessageType = "leave_game"
	MessageTypeListGames  MessageType = "list_games"
	MessageTypeGameAction MessageType = "game_action"

	// Server to client messages
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeError        MessageType = "error"
	MessageTypeGameCreated  MessageType = "game_created"
	MessageTypeGameJoined   MessageType = "game_joined"
	MessageTypeGameLeft     MessageType = "game_left"
	MessageTypeLobby        MessageType = "lobby"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypePrivateState MessageType = "private_state"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
