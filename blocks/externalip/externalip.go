// Package externalip shows the public address reported by an HTTP endpoint.
package externalip

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/reusee/e5"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "external_ip"

//go:embed schema.cue
var Schema string

type Config struct {
	URL         string          `json:"url"`
	Interval    configs.Seconds `json:"interval"`
	ShowCountry bool            `json:"show_country"`
}

func DefaultConfig() Config {
	return Config{
		URL:      "http://ip-api.com/json",
		Interval: 300,
	}
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var ErrNoAddress = errors.New("no address in response")

// response covers both the ipinfo.io and ip-api.com layouts.
type response struct {
	IP          string `json:"ip"`
	Query       string `json:"query"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

func (r response) address() string {
	if r.IP != "" {
		return r.IP
	}
	return r.Query
}

func (r response) country() string {
	if r.CountryCode != "" {
		return r.CountryCode
	}
	return r.Country
}

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	icon, err := api.GetIcon("net_wired")
	if err != nil {
		return err
	}
	widget := widgets.Widget{Icon: icon}

	for {
		resp, err := blocks.Recoverable(ctx, api, func(ctx context.Context) (response, error) {
			return fetch(ctx, api.HTTPClient(), config.URL)
		})
		if err != nil {
			return err
		}

		text := resp.address()
		if config.ShowCountry && resp.country() != "" {
			text += " " + resp.country()
		}
		if err := api.SetWidget(ctx, widget.WithText(text)); err != nil {
			return err
		}

		if err := api.WaitForUpdateRequestWithin(ctx, config.Interval.Duration()); err != nil {
			return err
		}
	}
}

func fetch(ctx context.Context, client *http.Client, url string) (ret response, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ret, wrap(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return ret, wrap(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ret, fmt.Errorf("%s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&ret); err != nil {
		return ret, wrap(err)
	}
	if ret.address() == "" {
		return ret, ErrNoAddress
	}
	return ret, nil
}
