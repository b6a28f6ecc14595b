package common

const (
	ScreenWidth  = 1000
	ScreenHeight = 600
	TimeStep     = 1.0 / 60.0

	DefaultGravityY = 900
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
