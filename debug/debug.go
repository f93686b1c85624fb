package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Migrate bool
	Convert bool
	Steps   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Migrate = boolEnv("JSONV_DEBUG_MIGRATE")
	d.Convert = boolEnv("JSONV_DEBUG_CONVERT")
	d.Steps = boolEnv("JSONV_DEBUG_STEPS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Migrate() bool {
	return d.Migrate
}
func Convert() bool {
	return d.Convert
}
func Steps() bool {
	return d.Steps
}
