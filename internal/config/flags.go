package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagVSync      = flag.Bool("vsync", false, "Wait for display refresh between frames")
	flagMesh       = flag.String("mesh", "", "OBJ mesh file (empty: built-in sphere)")
	flagTexture    = flag.String("texture", "", "Texture image file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagVSync {
		cfg.Graphics.VSync = true
	}
	if *flagMesh != "" {
		cfg.Assets.Mesh = *flagMesh
	}
	if *flagTexture != "" {
		cfg.Assets.Texture = *flagTexture
	}
}
