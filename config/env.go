package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvWidth     = "PHOSPHOR_WIDTH"
	EnvHeight    = "PHOSPHOR_HEIGHT"
	EnvFPS       = "PHOSPHOR_FPS"
	EnvFontPath  = "PHOSPHOR_FONT_PATH"
	EnvFontSize  = "PHOSPHOR_FONT_SIZE"
	EnvNoiseMode = "PHOSPHOR_NOISE_MODE"
	EnvSeed      = "PHOSPHOR_SEED"
	EnvOutput    = "PHOSPHOR_OUTPUT"
	EnvAudio     = "PHOSPHOR_AUDIO"
)

// LoadDotEnv loads variables from a .env file without overriding the real environment
// A missing file is not an error
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	log.Printf("Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides config values from PHOSPHOR_* variables
// Unparseable values are logged and ignored
func ApplyEnv(c *Config) {
	envInt(EnvWidth, &c.Render.Width)
	envInt(EnvHeight, &c.Render.Height)
	envInt(EnvFPS, &c.Render.FPS)

	if v := os.Getenv(EnvFontPath); v != "" {
		c.Font.Path = v
	}
	if v := os.Getenv(EnvFontSize); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Font.Size = f
		} else {
			log.Printf("Ignoring %s=%q: %v", EnvFontSize, v, err)
		}
	}
	if v := os.Getenv(EnvNoiseMode); v != "" {
		c.Effects.NoiseMode = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		if s, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Output.Seed = s
		} else {
			log.Printf("Ignoring %s=%q: %v", EnvSeed, v, err)
		}
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.GIF = v
	}
	if v := os.Getenv(EnvAudio); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		} else {
			log.Printf("Ignoring %s=%q: %v", EnvAudio, v, err)
		}
	}
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = n
}
