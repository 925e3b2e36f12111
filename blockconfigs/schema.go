package blockconfigs

import (
	"strings"

	"github.com/samber/lo"
)

const baseSchema = `
error_interval?:         number & >0
icons?:                  "none" | "awesome"
icons_overrides?:        [string]: [...string]
event_capacity?:         int & >0
request_capacity?:       int & >0
event_delivery_timeout?: number & >0
metrics_addr?:           string
proxy?:                  string
http_timeout?:           number & >0
max_commands?:           int & >0
blocks?:                 [...#Block]

#Click: {
	button:    "left" | "middle" | "right" | "up" | "down" | "forward" | "back"
	modifier?: string
	action?:   string
	update?:   bool
}

#Common: {
	block:           string
	error_interval?: number & >0
	signal?:         int & >=0 & <=30
	click?:          [...#Click]
}
`

// Schema is the cue source of the whole config file, without the enclosing
// braces.
type Schema string

func (Module) Schema() Schema {
	return Schema(buildSchema())
}

func buildSchema() string {
	var b strings.Builder
	b.WriteString(baseSchema)
	b.WriteString("#Block: ")
	b.WriteString(strings.Join(lo.Map(kinds, func(k kind, _ int) string {
		return defName(k.name)
	}), " | "))
	b.WriteString("\n")
	for _, k := range kinds {
		b.WriteString(k.blockSchema())
	}
	return b.String()
}
