package nets

import (
	"net/http"
	"time"

	"github.com/reusee/taibar/configs"
)

const DefaultHTTPTimeout = 10 * time.Second

type HTTPTimeout time.Duration

func (Module) HTTPTimeout(
	loader configs.Loader,
) HTTPTimeout {
	if seconds := configs.First[configs.Seconds](loader, "http_timeout"); seconds > 0 {
		return HTTPTimeout(seconds.Duration())
	}
	return HTTPTimeout(DefaultHTTPTimeout)
}

type HTTPClient = *http.Client

func (Module) HTTPClient(
	dialer Dialer,
	timeout HTTPTimeout,
) HTTPClient {
	return &http.Client{
		Timeout: time.Duration(timeout),
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     time.Minute,
		},
	}
}
