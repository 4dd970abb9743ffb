package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/logger"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	width     = flag.Int("width", 0, "grid width, overrides GRID_WIDTH")
	height    = flag.Int("height", 0, "grid height, overrides GRID_HEIGHT")
	obstacles = flag.String("obstacles", "", "obstacle cells \"x,y;x,y\", added to GRID_OBSTACLES")
	start     = flag.String("start", "", "start cell \"x,y\", default top left")
	target    = flag.String("target", "", "target cell \"x,y\", default bottom right")
)

func main() {
	flag.Parse()
	logger, err := logger.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}
	if *width > 0 {
		viper.Set("GRID_WIDTH", *width)
	}
	if *height > 0 {
		viper.Set("GRID_HEIGHT", *height)
	}

	entries := viper.GetStringSlice("GRID_OBSTACLES")
	if *obstacles != "" {
		entries = append(entries, strings.Split(*obstacles, ";")...)
	}
	seeded, err := parsePositions(entries)
	if err != nil {
		logger.Fatal("invalid obstacles", zap.Error(err))
	}

	gridEngine, err := engine.NewEngine(viper.GetInt("GRID_WIDTH"), viper.GetInt("GRID_HEIGHT"),
		viper.GetInt("MAX_GRID_CELLS"), 1, seeded, logger)
	if err != nil {
		logger.Fatal("failed to build grid", zap.Error(err))
	}

	if *start != "" {
		pos, err := parsePositions([]string{*start})
		if err != nil {
			logger.Fatal("invalid start", zap.Error(err))
		}
		gridEngine.SetStart(pos[0])
	}
	if *target != "" {
		pos, err := parsePositions([]string{*target})
		if err != nil {
			logger.Fatal("invalid target", zap.Error(err))
		}
		gridEngine.SetTarget(pos[0])
	}

	route := gridEngine.ShortestPath()
	fmt.Fprint(os.Stdout, engine.RenderText(gridEngine.Snapshot(), route.GetPath()))

	if !route.IsFound() {
		logger.Info("target unreachable", zap.Int("settledCells", route.GetNumSettledCells()))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("path found", zap.Int("steps", len(route.GetPath())-1), zap.Float64("cost", route.GetCost()),
		zap.Int("settledCells", route.GetNumSettledCells()))
}

func parsePositions(entries []string) ([]da.Position, error) {
	cells, err := util.ParseCellList(entries)
	if err != nil {
		return nil, err
	}
	positions := make([]da.Position, 0, len(cells))
	for _, c := range cells {
		positions = append(positions, da.NewPosition(c[0], c[1]))
	}
	return positions, nil
}
