package utils

import "strconv"

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func ColorText(text, color string) string {
	return color + text + Reset
}

func ColorStatus(statusCode int) string {
	code := strconv.Itoa(statusCode)
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ColorText(code, Green)
	case statusCode >= 400 && statusCode < 500:
		return ColorText(code, Yellow)
	case statusCode >= 500:
		return ColorText(code, Red)
	default:
		return code
	}
}
