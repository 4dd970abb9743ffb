package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("GRID_WIDTH", 10)
	viper.SetDefault("GRID_HEIGHT", 10)
	viper.SetDefault("GRID_OBSTACLES", []string{})
	viper.SetDefault("MAX_GRID_CELLS", 1_000_000)
	viper.SetDefault("PATH_CACHE_SIZE", 1024)

	// desktop window layout: 800px square, 10% frame
	viper.SetDefault("VIEWPORT_SIZE", 800.0)
	viper.SetDefault("VIEWPORT_FRAME_OFFSET", 80.0)

	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
}

// ReadConfig read ./data/config.{yaml,json,toml} on top of the defaults. env vars win over the file.
// a missing config file is not an error.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// ParseCellList parse "x,y" entries (GRID_OBSTACLES).
func ParseCellList(entries []string) ([][2]int, error) {
	cells := make([][2]int, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ",")
		if len(parts) != 2 {
			return nil, WrapErrorf(nil, ErrBadParamInput, "invalid cell %q, want x,y", entry)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, WrapErrorf(err, ErrBadParamInput, "invalid x in cell %q", entry)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, WrapErrorf(err, ErrBadParamInput, "invalid y in cell %q", entry)
		}
		cells = append(cells, [2]int{x, y})
	}
	return cells, nil
}
