package main

import (
	"context"
	"errors"
	"flag"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/geo"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-grid/pkg/logger"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable the global rate limiter (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}

	cells, err := util.ParseCellList(viper.GetStringSlice("GRID_OBSTACLES"))
	if err != nil {
		logger.Fatal("invalid GRID_OBSTACLES", zap.Error(err))
	}
	obstacles := make([]da.Position, 0, len(cells))
	for _, c := range cells {
		obstacles = append(obstacles, da.NewPosition(c[0], c[1]))
	}

	gridEngine, err := engine.NewEngine(viper.GetInt("GRID_WIDTH"), viper.GetInt("GRID_HEIGHT"),
		viper.GetInt("MAX_GRID_CELLS"), viper.GetInt("PATH_CACHE_SIZE"), obstacles, logger)
	if err != nil {
		logger.Fatal("failed to build grid", zap.Error(err))
	}

	viewport, err := geo.NewViewport(viper.GetFloat64("VIEWPORT_SIZE"), viper.GetFloat64("VIEWPORT_FRAME_OFFSET"),
		gridEngine.GetWidth(), gridEngine.GetHeight())
	if err != nil {
		logger.Fatal("invalid viewport", zap.Error(err))
	}

	gridService := usecases.NewGridService(logger, gridEngine, viewport)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api, err := http.NewServer(logger).Use(ctx, logger, *useRateLimit, gridService)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Navigatorx Grid Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
