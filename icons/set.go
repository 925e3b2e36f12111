package icons

import (
	"fmt"
	"maps"
	"math"
)

// Set maps an icon name to its glyphs. A name with more than one glyph is a
// progression: the glyph is chosen by a value in [0, 1].
type Set map[string][]string

func (s Set) Get(name string, progression *float64) (string, bool) {
	glyphs, ok := s[name]
	if !ok || len(glyphs) == 0 {
		return "", false
	}
	if progression == nil || len(glyphs) == 1 {
		return glyphs[0], true
	}
	v := *progression
	if math.IsNaN(v) {
		v = 0
	}
	idx := int(v * float64(len(glyphs)))
	idx = max(0, min(idx, len(glyphs)-1))
	return glyphs[idx], true
}

// With returns a copy of s with overrides applied.
func (s Set) With(overrides Set) Set {
	ret := maps.Clone(s)
	if ret == nil {
		ret = make(Set, len(overrides))
	}
	maps.Copy(ret, overrides)
	return ret
}

func Named(name string) (Set, error) {
	switch name {
	case "", "none":
		return None, nil
	case "awesome":
		return Awesome, nil
	}
	return nil, fmt.Errorf("unknown icon set: %s", name)
}

var None = Set{
	"cpu":         {"CPU"},
	"error":       {"X"},
	"memory_mem":  {"MEM"},
	"net_wired":   {"NET"},
	"tea":         {"TEA"},
	"time":        {"TIME"},
	"toggle_off":  {"OFF"},
	"toggle_on":   {"ON"},
	"update":      {"UPD"},
	"uptime":      {"UP"},
	"bat":         {"BAT"},
	"volume":      {"VOL"},
	"temperature": {"TEMP"},
}

var Awesome = Set{
	"cpu":         {"\uf0e4"},
	"error":       {"\uf00d"},
	"memory_mem":  {"\uf2db"},
	"net_wired":   {"\uf0ac"},
	"tea":         {"\uf0f4"},
	"time":        {"\uf017"},
	"toggle_off":  {"\uf204"},
	"toggle_on":   {"\uf205"},
	"update":      {"\uf062"},
	"uptime":      {"\uf251"},
	"bat":         {"\uf244", "\uf243", "\uf242", "\uf241", "\uf240"},
	"volume":      {"\uf026", "\uf027", "\uf028"},
	"temperature": {"\uf2cb", "\uf2ca", "\uf2c9", "\uf2c8", "\uf2c7"},
}
