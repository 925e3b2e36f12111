package blocks

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/reusee/taibar/icons"
	"github.com/reusee/taibar/logs"
	"github.com/reusee/taibar/syncs"
)

const DefaultErrorInterval = 5 * time.Second

// SharedConfig holds resources read by every block. It is built once at
// startup and must not be mutated afterwards.
type SharedConfig struct {
	Icons      icons.Set
	Logger     logs.Logger
	HTTPClient *http.Client
	// Commands bounds the number of shell commands running at once.
	Commands syncs.Semaphore
}

func (s *SharedConfig) GetIcon(name string, progression *float64) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.Icons.Get(name, progression)
}

var discardLogger = slog.New(slog.DiscardHandler)

func (a *CommonApi) Logger() logs.Logger {
	if a.Shared == nil || a.Shared.Logger == nil {
		return discardLogger
	}
	return a.Shared.Logger
}

func (a *CommonApi) HTTPClient() *http.Client {
	if a.Shared == nil || a.Shared.HTTPClient == nil {
		return http.DefaultClient
	}
	return a.Shared.HTTPClient
}
