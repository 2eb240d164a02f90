package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs elapsed wall time for an operation at debug level. Used with
// defer around whole-grid runs so slow censuses show up without per-cell
// logging noise.
func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	log.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
}
