// Package config loads tool settings from hexcolor.yaml and HEXCOLOR_* variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

type PackSetting struct {
	Compression string `mapstructure:"compression"`
}

type SwatchSetting struct {
	Columns int `mapstructure:"columns"`
}

type LogSetting struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Configuration struct {
	DefaultAlpha float64       `mapstructure:"default_alpha"`
	Pack         PackSetting   `mapstructure:"pack"`
	Swatch       SwatchSetting `mapstructure:"swatch"`
	Log          LogSetting    `mapstructure:"log"`
}

// Compression returns the configured pack codec.
func (c *Configuration) Compression() hexcolor.PackCompression {
	comp, _ := hexcolor.ParsePackCompression(c.Pack.Compression)
	return comp
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("hexcolor")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HEXCOLOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("default_alpha", hexcolor.DefaultAlpha)
	v.SetDefault("pack.compression", "zlib")
	v.SetDefault("swatch.columns", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	return v
}

// Load reads hexcolor.yaml from the given directories (if present), applies
// environment overrides and validates the result.
func Load(paths ...string) (*Configuration, error) {
	v := newViper()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}
	var conf Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}
	if err := check(&conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

type checkFunc func(conf *Configuration) error

func check(conf *Configuration) error {
	checkFuncs := []checkFunc{
		checkAlpha,
		checkCompression,
		checkColumns,
	}
	for _, f := range checkFuncs {
		if err := f(conf); err != nil {
			return err
		}
	}
	return nil
}

func checkAlpha(conf *Configuration) error {
	if math.IsNaN(conf.DefaultAlpha) {
		return errors.New("default_alpha is not a number")
	}
	conf.DefaultAlpha = hexcolor.ClampAlpha(conf.DefaultAlpha)
	return nil
}

func checkCompression(conf *Configuration) error {
	conf.Pack.Compression = strings.ToLower(conf.Pack.Compression)
	if _, err := hexcolor.ParsePackCompression(conf.Pack.Compression); err != nil {
		return fmt.Errorf("pack.compression: %w", err)
	}
	return nil
}

func checkColumns(conf *Configuration) error {
	if conf.Swatch.Columns < 0 {
		return fmt.Errorf("swatch.columns must be >= 0, got %d", conf.Swatch.Columns)
	}
	return nil
}
