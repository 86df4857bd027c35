// Package portal is a small stand-in for the bdjobs site. It serves the
// pages the page objects drive, backed by an in-memory store, so scenarios
// can run without network access.
package portal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "bdjobs_session"

// NewRouter wires every portal route onto a fresh gin engine.
func NewRouter(store *Store, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery(), currentUser(store))

	tmpl := template.Must(template.New("portal").ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	h := &handlers{store: store, log: log}
	r.GET("/", h.home)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/forgot-password", h.forgotPasswordForm)
	r.POST("/forgot-password", h.forgotPassword)
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/logout", h.logout)
	r.POST("/logout", h.logout)

	r.GET("/jobs", h.jobs)
	r.GET("/jobs/:id", h.job)
	r.POST("/jobs/:id/apply", requireLogin(), h.apply)
	r.POST("/jobs/:id/save", requireLogin(), h.save)

	my := r.Group("/my-bdjobs", requireLogin())
	my.GET("/my-profile", h.profile)
	my.GET("/edit-profile", h.editProfileForm)
	my.POST("/edit-profile", h.editProfile)
	my.GET("/resume", h.resume)
	my.GET("/applied-jobs", h.appliedJobs)
	my.GET("/saved-jobs", h.savedJobs)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Server is a portal listening on a real TCP port.
type Server struct {
	URL   string
	Store *Store

	srv *http.Server
	log *zap.Logger
}

// Start serves a portal on addr ("127.0.0.1:0" picks a free port) until
// Shutdown.
func Start(addr string, store *Store, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	s := &Server{
		URL:   "http://" + ln.Addr().String(),
		Store: store,
		srv: &http.Server{
			Handler:           NewRouter(store, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("portal stopped", zap.Error(err))
		}
	}()
	log.Info("portal listening", zap.String("url", s.URL))
	return s, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
