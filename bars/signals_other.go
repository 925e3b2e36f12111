//go:build !linux

package bars

import "os"

func notifySignals([]int) (<-chan os.Signal, func()) {
	return nil, func() {}
}

func blockSignal(os.Signal) (int, bool) {
	return -1, false
}
