package http

import (
	"context"

	http_router "github.com/lintang-b-s/navigatorx-grid/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-grid/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log   *zap.Logger
	group *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use start the rest api and the websocket input layer in the background. both stop when ctx is canceled.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	gridService controllers.GridService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)

	viper.SetDefault("API_TIMEOUT", "10s")

	config := http_server.Config{
		Port:           viper.GetInt("API_PORT"),
		WebsocketPort:  viper.GetInt("WEBSOCKET_PORT"),
		Timeout:        viper.GetDuration("API_TIMEOUT"),
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
	}

	server := http_router.NewAPI(log)

	s.group = &errgroup.Group{}

	s.group.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, gridService,
		)
	})

	return s, nil
}

// Wait block until the servers started by Use have stopped.
func (s *Server) Wait() error {
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}
