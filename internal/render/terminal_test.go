package render_test

import (
	"bytes"
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/render"
)

type scriptedKeys struct {
	pending []byte
	closed  bool
}

func (k *scriptedKeys) Poll() (byte, bool) {
	if len(k.pending) == 0 {
		return 0, false
	}
	b := k.pending[0]
	k.pending = k.pending[1:]
	return b, true
}

func (k *scriptedKeys) Wait(ctx context.Context) (byte, bool) {
	if b, ok := k.Poll(); ok {
		return b, true
	}
	<-ctx.Done()
	return 0, false
}

func (k *scriptedKeys) Close() error {
	k.closed = true
	return nil
}

var _ = Describe("Terminal", func() {
	var (
		out  *bytes.Buffer
		keys *scriptedKeys
		term *render.Terminal
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		keys = &scriptedKeys{}
		var err error
		term, err = render.NewTerminal(out, keys)
		Expect(err).NotTo(HaveOccurred())
	})

	It("clears the screen and hides the cursor on acquire", func() {
		Expect(out.String()).To(Equal("\x1b[2J\x1b[H\x1b[?25l"))
	})

	It("falls back to 80x24 when the size is unknown", func() {
		w, h := term.Size()
		Expect(w).To(Equal(80))
		Expect(h).To(Equal(24))
	})

	It("restores the cursor exactly once on release", func() {
		out.Reset()
		Expect(term.Close()).To(Succeed())
		Expect(out.String()).To(Equal("\x1b[0m\x1b[?25h\x1b[2J\x1b[H"))
		Expect(keys.closed).To(BeTrue())

		out.Reset()
		Expect(term.Close()).To(Succeed())
		Expect(out.Len()).To(BeZero())
	})

	DescribeTable("stop polling",
		func(input string, stop bool) {
			keys.pending = []byte(input)
			Expect(term.ShouldStop()).To(Equal(stop))
			Expect(keys.pending).To(BeEmpty())
		},
		Entry("no input", "", false),
		Entry("enter", "\r", true),
		Entry("newline", "\n", true),
		Entry("q", "q", true),
		Entry("ctrl-c", "\x03", true),
		Entry("other keys", "abc", false),
		Entry("quit key buried in input", "xyq", true),
	)

	It("returns from WaitKey on a key press", func() {
		keys.pending = []byte("x")
		term.WaitKey(context.Background())
		Expect(keys.pending).To(BeEmpty())
	})

	It("returns from WaitKey when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			term.WaitKey(ctx)
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(BeClosed())
		cancel()
		Eventually(done, time.Second).Should(BeClosed())
	})

	It("does not block when nothing is pending", func() {
		Expect(term.ShouldStop()).To(BeFalse())
		Expect(term.ShouldStop()).To(BeFalse())
	})
})

var _ = Describe("IsQuitKey", func() {
	It("accepts upper and lower case q", func() {
		Expect(render.IsQuitKey('q')).To(BeTrue())
		Expect(render.IsQuitKey('Q')).To(BeTrue())
		Expect(render.IsQuitKey('w')).To(BeFalse())
	})
})
