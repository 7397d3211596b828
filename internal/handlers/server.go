// internal/handlers/server.go
package handlers

import (
	"github.com/wildcard-games/uno-service/internal/game"
)

// Server is a high-level struct that holds the room registry and is passed
// into every handler; there is no package-level room table.
type Server struct {
	Registry *game.Registry
}

// NewServer builds a Server with an empty registry using the stock rules.
func NewServer() *Server {
	return &Server{
		Registry: game.NewRegistry(game.DefaultRules()),
	}
}
