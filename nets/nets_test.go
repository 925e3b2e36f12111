package nets

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/modes"
)

func testScope(t *testing.T, config string) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoaderFromSources([]configs.Source{
			{Path: "test.cue", Content: []byte(config)},
		}, "")),
	)
}

func TestIsLocalAddr(t *testing.T) {
	testScope(t, "").Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"127.0.0.1:10000": true,
			"10.1.2.3":        true,
			"[::1]:80":        true,
			"8.8.8.8:53":      false,
			"foo.invalid:80":  false,
		} {
			yes, err := isLocalAddr(addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != expected {
				t.Fatalf("%s: got %v", addr, yes)
			}
		}
	})
}

func TestNoProxyInDevelopment(t *testing.T) {
	testScope(t, `proxy: "socks5://127.0.0.1:1"`).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
	) {
		if addr != "" {
			t.Fatalf("got %v", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
	})
}

func TestProxyURL(t *testing.T) {
	testScope(t, "").Fork(
		func() ProxyAddr {
			return "socks://127.0.0.1:1080"
		},
	).Call(func(
		getURL GetProxyURL,
		getDialer GetProxyDialer,
	) {
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" || u.Host != "127.0.0.1:1080" {
			t.Fatalf("got %v", u)
		}
		if _, err := getDialer(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestHTTPTimeout(t *testing.T) {
	testScope(t, "").Call(func(
		timeout HTTPTimeout,
	) {
		if time.Duration(timeout) != DefaultHTTPTimeout {
			t.Fatalf("got %v", time.Duration(timeout))
		}
	})
	testScope(t, `http_timeout: 2.5`).Call(func(
		client HTTPClient,
	) {
		if client.Timeout != 2500*time.Millisecond {
			t.Fatalf("got %v", client.Timeout)
		}
	})
}

func TestHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	testScope(t, "").Call(func(
		client HTTPClient,
	) {
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != "ok" {
			t.Fatalf("got %s", body)
		}
	})
}
