package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-photoshare/internal/app/uploads"
	"github.com/FACorreiaa/go-photoshare/internal/pkg/config"
	"github.com/FACorreiaa/go-photoshare/internal/server"
)

func TestHTTPServerTimeouts(t *testing.T) {
	for name, tc := range map[string]struct {
		apiTimeout time.Duration
		want       time.Duration
	}{
		"api timeout plus render headroom": {10 * time.Second, 25 * time.Second},
		"no api timeout means no write limit": {0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.API.Timeout = tc.apiTimeout

			srv := server.New(cfg, zap.NewNop()).HTTPServer()

			assert.Equal(t, tc.want, srv.WriteTimeout)
			assert.Equal(t, 30*time.Second, srv.ReadTimeout)
			assert.Equal(t, ":"+cfg.ServerPort, srv.Addr)
			assert.NotNil(t, srv.ErrorLog)
		})
	}
}

func TestRouterMultipartMemory(t *testing.T) {
	_, cfg, r := newRouter(t)

	assert.Equal(t, cfg.Upload.MaxPhotoBytes+uploads.FormOverhead, r.MaxMultipartMemory)
}
