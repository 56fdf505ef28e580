package core

// RuntimeConfig contains the frontend screen size used before the first resize.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters (terminal) or pixels (window)
	ScreenH int // Screen height in characters (terminal) or pixels (window)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
