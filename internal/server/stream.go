package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/san-kum/orrery/internal/orbit"
)

const (
	DefaultStreamInterval = 100 * time.Millisecond
	MinStreamInterval     = 10 * time.Millisecond
	writeWait             = time.Second
)

type Frame struct {
	T    float64    `json:"t"`
	Data []Position `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// stream pushes a Frame every interval_ms, starting at t0 and advancing
// with wall time. It ends when the client goes away or after count
// frames when count is set.
func (h *handler) stream(c *gin.Context) {
	interval := DefaultStreamInterval
	if raw, ok := c.GetQuery("interval_ms"); ok {
		ms, err := strconv.Atoi(raw)
		if err != nil || time.Duration(ms)*time.Millisecond < MinStreamInterval {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interval_ms"})
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "0"))
	if err != nil || count < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
		return
	}
	t, ok := floatQuery(c, "t0", 0)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.StreamOpened()
		defer h.metrics.StreamClosed()
	}

	// the read side only detects the close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for sent := 0; count == 0 || sent < count; sent++ {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(Frame{T: t, Data: h.positions(t)}); err != nil {
			return
		}

		select {
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		case now := <-ticker.C:
			t += now.Sub(last).Seconds()
			last = now
		}
	}

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *handler) positions(t float64) []Position {
	out := make([]Position, len(h.bodies))
	for i, b := range h.bodies {
		angle := orbit.AngleAt(b, t, h.speed)
		p := orbit.Position(b.Radius, angle)
		out[i] = Position{Name: b.Name, X: p.X, Y: p.Y, Angle: angle}
	}
	return out
}
