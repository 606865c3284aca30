package api

import (
	"context"

	"github.com/vytor/patternmaster/internal/services"
)

// Pinger reports store reachability for the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	PatternService services.PatternService
	HintService    services.HintService
	UserService    services.UserService
	Store          Pinger
	CORSOrigin     string
}
