//go:build !tinygo

// Package web serves the radio's control page and a JSON status endpoint.
package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"fmradio/present"
	"fmradio/radio"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

// Controller runs intents on the radio's loop.
type Controller interface {
	Submit(ctx context.Context, in radio.Intent) (radio.State, error)
}

// Logger matches hal.Logger.
type Logger interface {
	WriteLineString(s string)
}

// Routes lists the mutating paths in page order.
var Routes = []struct {
	Path   string
	Intent radio.Intent
}{
	{"/up", radio.StepUp},
	{"/down", radio.StepDown},
	{"/seekup", radio.SeekUp},
	{"/seekdown", radio.SeekDown},
	{"/toggle", radio.TogglePower},
	{"/volup", radio.VolumeUp},
	{"/voldown", radio.VolumeDown},
}

// Server is the HTTP control surface.
type Server struct {
	e    *echo.Echo
	ctrl Controller
}

// New builds the router. Access logs go to log when it is not nil.
func New(ctrl Controller, log Logger) *Server {
	s := &Server{e: echo.New(), ctrl: ctrl}
	s.e.HideBanner = true

	var out io.Writer = io.Discard
	if log != nil {
		out = &lineWriter{log: log}
	}
	s.e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "http: method=${method}, uri=${uri}, status=${status}, latency=${latency_human}\n",
		Output: out,
	}))
	s.e.Use(middleware.Recover())

	s.e.GET("/", s.pageHandler)
	s.e.GET("/api/status", s.statusHandler)
	for _, r := range Routes {
		s.e.GET(r.Path, s.intentHandler(r.Intent))
	}
	return s
}

// ServeHTTP makes the server usable with net/http tooling.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) pageHandler(c echo.Context) error {
	st, err := s.ctrl.Submit(c.Request().Context(), radio.Refresh)
	if err != nil {
		return unavailable(c, err)
	}
	var buf bytes.Buffer
	if err := present.WritePage(&buf, st); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

func (s *Server) statusHandler(c echo.Context) error {
	st, err := s.ctrl.Submit(c.Request().Context(), radio.Refresh)
	if err != nil {
		return unavailable(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) intentHandler(in radio.Intent) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := s.ctrl.Submit(c.Request().Context(), in); err != nil {
			return unavailable(c, err)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func unavailable(c echo.Context, err error) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{
		"error": err.Error(),
	})
}

// lineWriter feeds newline-terminated writes into a Logger.
type lineWriter struct {
	log Logger
}

func (w *lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			w.log.WriteLineString(line)
		}
	}
	return len(p), nil
}
