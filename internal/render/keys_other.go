//go:build !unix

package render

import (
	"bufio"
	"context"
	"os"
)

// chanKeySource feeds a buffered channel from a reader goroutine.
type chanKeySource struct {
	ch chan byte
}

func newKeySource(in *os.File) KeySource {
	k := &chanKeySource{ch: make(chan byte, 64)}
	go func() {
		defer close(k.ch)
		r := bufio.NewReader(in)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			k.ch <- b
		}
	}()
	return k
}

func (k *chanKeySource) Poll() (byte, bool) {
	select {
	case b, ok := <-k.ch:
		return b, ok
	default:
		return 0, false
	}
}

func (k *chanKeySource) Wait(ctx context.Context) (byte, bool) {
	select {
	case b, ok := <-k.ch:
		return b, ok
	case <-ctx.Done():
		return 0, false
	}
}

func (k *chanKeySource) Close() error { return nil }
