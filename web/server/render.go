package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports the scanlines still to be rendered
type ProgressUpdate struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// ImageUpdate carries the finished frame
type ImageUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	MaxDepth         int     `json:"maxDepth"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	PrimitiveCount   int     `json:"primitiveCount"`
}

func newStats(stats renderer.RenderStats, sceneObj *scene.Scene) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		SamplesPerPixel:  stats.SamplesPerPixel,
		MaxDepth:         stats.MaxDepth,
		Workers:          len(stats.Workers),
		SamplesPerSecond: stats.SamplesPerSecond(),
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
	}
}

// handleImage renders the requested scene and responds with the encoded image
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	encoder, err := imageio.WriterForFormat(req.Format)
	if err != nil {
		s.writeError(w, xerrors.Errorf("%v: %w", err, core.ErrInvalidConfiguration))
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, renderer.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, err)
		return
	}

	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		if xerrors.Is(err, renderer.ErrInterrupted) {
			s.logger.Infof("Image request for %q abandoned by client", req.Scene)
			return
		}
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, frame); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(req.Format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", fmt.Sprint(stats.TotalSamples))
	w.Header().Set("X-Render-Time-Ms", fmt.Sprint(stats.RenderTime.Milliseconds()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warningf("Error writing image: %v", err)
	}
}

func contentType(format string) string {
	if format == "ppm" {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}

// handleRender renders with live progress streamed via SSE. The finished
// frame is sent as a base64 PNG in an "image" event.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Bad requests are answered before the stream starts
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine owns the response
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)
	s.runRender(ctx, sseEventChan, sceneObj, webLogger)

	// The render no longer logs; drain the console before the final close
	close(consoleChan)
	<-consoleDone
	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// runRender renders sceneObj and sends the progress, image and completion events
func (s *Server) runRender(ctx context.Context, sseEventChan chan<- SSEEvent, sceneObj *scene.Scene, logger core.Logger) {
	progress := &sseProgress{ctx: ctx, events: sseEventChan}
	raytracer, err := renderer.NewRaytracer(sceneObj,
		renderer.WithLogger(logger),
		renderer.WithProgress(progress),
	)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	startTime := time.Now()
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		if xerrors.Is(err, renderer.ErrInterrupted) {
			// Client disconnected
			return
		}
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(frame)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Encoding failed: %v", err))
		return
	}

	update := ImageUpdate{
		Width:     frame.Width,
		Height:    frame.Height,
		ImageData: imageData,
		Stats:     newStats(stats, sceneObj),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		s.logger.Errorf("Error marshaling image update: %v", err)
		return
	}

	s.sendEvent(ctx, sseEventChan, "image", string(data))
	s.sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
}

// writeSSEEvents writes every event in a single goroutine until the channel
// is closed. Once the client is gone the remaining events are drained.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range sseEventChan {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Warningf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event, giving up if the client disconnects
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// sseProgress streams scanline progress. Updates are dropped rather than
// stalling a worker when the stream falls behind.
type sseProgress struct {
	ctx    context.Context
	events chan<- SSEEvent
}

func (p *sseProgress) Update(remaining, total int) {
	data, err := json.Marshal(ProgressUpdate{Remaining: remaining, Total: total})
	if err != nil {
		return
	}
	select {
	case p.events <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-p.ctx.Done():
	default:
	}
}

func (p *sseProgress) Done() {}

// imageToBase64PNG converts a frame to a base64-encoded PNG
func imageToBase64PNG(src imageio.PixelSource) (string, error) {
	var buf bytes.Buffer
	if err := (imageio.PNGWriter{}).Encode(&buf, src); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
