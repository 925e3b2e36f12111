package bars

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// glibc reserves the first two real-time signals
const sigrtmin = 34

// notifySignals subscribes to SIGUSR1 and SIGRTMIN+n for each n.
func notifySignals(numbers []int) (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 8)
	sigs := []os.Signal{unix.SIGUSR1}
	for _, n := range numbers {
		sigs = append(sigs, unix.Signal(sigrtmin+n))
	}
	signal.Notify(ch, sigs...)
	return ch, func() {
		signal.Stop(ch)
	}
}

// blockSignal maps sig to a block signal number. all is true for SIGUSR1,
// which refreshes every block.
func blockSignal(sig os.Signal) (n int, all bool) {
	s, ok := sig.(unix.Signal)
	if !ok {
		return -1, false
	}
	if s == unix.SIGUSR1 {
		return 0, true
	}
	return int(s) - sigrtmin, false
}
