package blocks

import (
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/configs"
)

// CommonConfig holds the keys every block accepts besides its own.
type CommonConfig struct {
	ErrorInterval configs.Seconds  `json:"error_interval,omitempty"`
	Signal        *int             `json:"signal,omitempty"`
	Click         []clicks.Binding `json:"click,omitempty"`
}
