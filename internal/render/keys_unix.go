//go:build unix

package render

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// waitSliceMs bounds each blocking poll so Wait notices cancellation.
const waitSliceMs = 100

type fdKeySource struct {
	fd  int
	eof bool
}

func newKeySource(in *os.File) KeySource {
	return &fdKeySource{fd: int(in.Fd())}
}

func (k *fdKeySource) Poll() (byte, bool) {
	return k.read(0)
}

func (k *fdKeySource) Wait(ctx context.Context) (byte, bool) {
	for !k.eof {
		if ctx.Err() != nil {
			return 0, false
		}
		if b, ok := k.read(waitSliceMs); ok {
			return b, true
		}
	}
	return 0, false
}

// read polls with the given timeout in milliseconds.
func (k *fdKeySource) read(timeout int) (byte, bool) {
	if k.eof {
		return 0, false
	}
	for {
		fds := []unix.PollFd{{Fd: int32(k.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeout)
		if err == unix.EINTR {
			return 0, false
		}
		if err != nil {
			// the descriptor is unusable, treat it as exhausted
			k.eof = true
			return 0, false
		}
		if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
			return 0, false
		}

		var buf [1]byte
		rn, err := unix.Read(k.fd, buf[:])
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err != nil || rn == 0 {
			// EOF: no quit key can arrive any more
			k.eof = true
			return 0, false
		}
		return buf[0], true
	}
}

func (k *fdKeySource) Close() error { return nil }
