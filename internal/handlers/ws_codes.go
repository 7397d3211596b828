// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room handler. These provide more
// specific reasons for closure than the standard codes.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
	InvalidRoomIDError  = 3001 // Room id missing or malformed in the WS URL.
	AuthFailedError     = 3002 // Guest identity could not be established.
)
