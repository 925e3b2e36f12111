package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibar/bars"
)

type Module struct {
	dscope.Module
	Bars bars.Module
}
