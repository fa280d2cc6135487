// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings. Zero width/height means half
// the desktop resolution.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AssetsConfig holds the four asset file paths. An empty mesh path
// selects the built-in sphere.
type AssetsConfig struct {
	Mesh           string `yaml:"mesh"`
	Texture        string `yaml:"texture"`
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      0,
			Height:     0,
			Fullscreen: false,
			// Rendering does not wait for the display refresh; the
			// FPS readout is meant to show raw frame times.
			VSync: false,
		},
		Assets: AssetsConfig{
			Mesh:           "",
			Texture:        "assets/textures/earth2048.tga",
			VertexShader:   "assets/shaders/vertexshader.glsl",
			FragmentShader: "assets/shaders/fragmentshader.glsl",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
