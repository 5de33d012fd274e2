// Package server exposes the catalog and computed positions as a JSON API.
package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/store"
	"golang.org/x/time/rate"
)

// MaxSteps bounds a single ephemeris request.
const MaxSteps = 10000

type Options struct {
	AllowOrigins []string
	// Speed is the time multiplier; zero means 1.
	Speed     float64
	AccessLog bool
	// RateLimit is requests per second per client; zero disables it.
	RateLimit float64
	Burst     int
	// Metrics, when set, is also served on /metrics.
	Metrics *metrics.Collector
}

type BodyInfo struct {
	Name   string  `json:"name"`
	Glyph  string  `json:"glyph"`
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
	Period float64 `json:"period"`
	Phase  float64 `json:"phase"`
}

type Position struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type handler struct {
	bodies  []orrery.Body
	speed   float64
	metrics *metrics.Collector
}

// NewRouter builds the API routes for a fixed catalog.
func NewRouter(bodies []orrery.Body, opts Options) *gin.Engine {
	r := gin.New()
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: false,
		}))
	}

	if opts.Metrics != nil {
		r.Use(instrument(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	h := &handler{bodies: bodies, speed: speed, metrics: opts.Metrics}

	api := r.Group("/api")
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		api.Use(NewIPRateLimiter(rate.Limit(opts.RateLimit), burst).Middleware())
	}
	{
		api.GET("/bodies", h.getBodies)
		api.GET("/bodies/:name", h.getBody)
		api.GET("/positions", h.getPositions)
		api.GET("/ephemeris", h.getEphemeris)
		api.GET("/stream", h.stream)
	}
	return r
}

func instrument(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func info(b orrery.Body) BodyInfo {
	return BodyInfo{
		Name:   b.Name,
		Glyph:  string(b.Glyph),
		Color:  b.Color.String(),
		Radius: b.Radius,
		Period: b.Period,
		Phase:  b.Phase,
	}
}

func (h *handler) getBodies(c *gin.Context) {
	out := make([]BodyInfo, len(h.bodies))
	for i, b := range h.bodies {
		out[i] = info(b)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  out,
		"count": len(out),
	})
}

func (h *handler) getBody(c *gin.Context) {
	name := c.Param("name")
	for _, b := range h.bodies {
		if strings.EqualFold(b.Name, name) {
			c.JSON(http.StatusOK, gin.H{"data": info(b)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
}

// getPositions places every body at simulated time t.
func (h *handler) getPositions(c *gin.Context) {
	t, ok := floatQuery(c, "t", 0)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"t":     t,
		"speed": h.speed,
		"data":  h.positions(t),
	})
}

func (h *handler) getEphemeris(c *gin.Context) {
	dt, ok := floatQuery(c, "dt", 0.1)
	if !ok {
		return
	}
	steps, err := strconv.Atoi(c.DefaultQuery("steps", "100"))
	if err != nil || steps < 1 || steps > MaxSteps {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steps must be between 1 and " + strconv.Itoa(MaxSteps)})
		return
	}

	e, err := store.Record(h.bodies, dt, h.speed, steps)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func floatQuery(c *gin.Context, key string, def float64) (float64, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}
