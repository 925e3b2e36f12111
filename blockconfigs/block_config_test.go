package blockconfigs

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/blocks/blocktest"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/modes"
)

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(kinds) {
		t.Fatalf("got %v", names)
	}
	for _, name := range []string{
		"custom", "external_ip", "load", "memory",
		"tea_timer", "time", "toggle", "uptime",
	} {
		if _, ok := slices.BinarySearch(names, name); !ok {
			t.Fatalf("%s not defined", name)
		}
		if kindsByName[name].name != name {
			t.Fatalf("bad entry for %s", name)
		}
	}
}

func TestDefName(t *testing.T) {
	if got := defName("external_ip"); got != "#ExternalIp" {
		t.Fatalf("got %s", got)
	}
}

func TestParse(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/taibar.cue"}, buildSchema())
	if err := loader.Check(); err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(loader)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 8 {
		t.Fatalf("got %d", len(parsed))
	}
	for i, name := range []string{
		"time", "load", "custom", "toggle",
		"memory", "uptime", "external_ip", "tea_timer",
	} {
		if parsed[i].Name() != name {
			t.Fatalf("%d: got %s", i, parsed[i].Name())
		}
	}

	common := parsed[1].Common
	if common.ErrorInterval != 1.5 {
		t.Fatalf("got %v", common.ErrorInterval)
	}
	if common.Signal == nil || *common.Signal != 2 {
		t.Fatalf("got %v", common.Signal)
	}
	if len(common.Click) != 1 || common.Click[0].Button != "left" || !common.Click[0].Update {
		t.Fatalf("got %+v", common.Click)
	}
	if parsed[0].Common.Signal != nil {
		t.Fatal()
	}
}

func TestParseEmpty(t *testing.T) {
	loader := configs.NewLoaderFromSources([]configs.Source{
		{Path: "empty.cue", Content: []byte(`error_interval: 1`)},
	}, buildSchema())
	parsed, err := Parse(loader)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 0 {
		t.Fatalf("got %v", parsed)
	}
}

func TestUnknownBlock(t *testing.T) {
	// without a schema the tag lookup still rejects it
	loader := configs.NewLoader([]string{"testdata/unknown_block.cue"}, "")
	if _, err := Parse(loader); !errors.Is(err, ErrUnknownBlock) {
		t.Fatalf("got %v", err)
	}

	loader = configs.NewLoader([]string{"testdata/unknown_block.cue"}, buildSchema())
	if err := loader.Check(); err == nil {
		t.Fatal("should error")
	}
}

func TestUnknownField(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/unknown_field.cue"}, "")
	if _, err := Parse(loader); err == nil {
		t.Fatal("should error")
	}
	loader = configs.NewLoader([]string{"testdata/unknown_field.cue"}, buildSchema())
	if err := loader.Check(); err == nil {
		t.Fatal("should error")
	}
}

func TestUnknownButton(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/unknown_button.cue"}, buildSchema())
	if err := loader.Check(); err == nil {
		t.Fatal("should error")
	}
}

func TestMissingField(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/missing_field.cue"}, "")
	if _, err := Parse(loader); err == nil {
		t.Fatal("should error")
	}
}

func TestRunAttributesErrors(t *testing.T) {
	loader := configs.NewLoaderFromSources([]configs.Source{
		{Path: "custom.cue", Content: []byte(`blocks: [{block: "custom"}]`)},
	}, "")
	parsed, err := Parse(loader)
	if err != nil {
		t.Fatal(err)
	}

	h := blocktest.New(t, 3)
	err = parsed[0].Run(h.Api)(context.Background())
	var blockErr *blocks.BlockError
	if !errors.As(err, &blockErr) {
		t.Fatalf("got %v", err)
	}
	if blockErr.Block != "custom" || blockErr.ID != 3 {
		t.Fatalf("got %+v", blockErr)
	}
	if err.Error() != "in block custom (#3): one of command and script is required" {
		t.Fatalf("got %v", err)
	}
}

func TestRunPassesSuccess(t *testing.T) {
	config := BlockConfig{
		name: "noop",
		run: func(ctx context.Context, api *blocks.CommonApi) error {
			return nil
		},
	}
	if err := config.Run(&blocks.CommonApi{ID: 1})(context.Background()); err != nil {
		t.Fatalf("got %v", err)
	}
}

func TestModule(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Paths {
			return configs.Paths{"testdata/taibar.cue"}
		},
	).Call(func(
		loader configs.Loader,
	) {
		if err := loader.Check(); err != nil {
			t.Fatal(err)
		}
		if got := configs.First[configs.Seconds](loader, "error_interval"); got != 3 {
			t.Fatalf("got %v", got)
		}
	})
}
