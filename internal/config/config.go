// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig holds scene and lighting settings.
type SceneConfig struct {
	// AmbientColor is the global ambient in signed RGB components.
	AmbientColor []float32 `yaml:"ambient_color"`
	// CameraDistance is the starting orbit distance.
	CameraDistance float32 `yaml:"camera_distance"`
	// FOVDegrees is the vertical field of view.
	FOVDegrees float32 `yaml:"fov_degrees"`
}

// AssetsConfig holds stimulus asset paths.
type AssetsConfig struct {
	// ObjPath is an optional Wavefront OBJ mesh to show alongside the
	// procedural stimuli.
	ObjPath string `yaml:"obj_path"`
	// ScreenshotDir receives captured frames.
	ScreenshotDir string `yaml:"screenshot_dir"`
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
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			AmbientColor:   []float32{-0.8, -0.8, -0.8},
			CameraDistance: 5,
			FOVDegrees:     60,
		},
		Assets: AssetsConfig{
			ObjPath:       "",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
