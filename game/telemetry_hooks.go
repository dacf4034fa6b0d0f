package game

import (
	"time"

	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/telemetry"
)

// recordProfile logs an applied profile and appends it to profile.csv.
func (a *App) recordProfile(reason string, p detect.Profile) {
	var dec *detect.Decision
	if d, ok := a.detector.LastDecision(); ok {
		dec = &d
	}
	rec := telemetry.NewProfileRecord(a.now, a.frame, reason, p, dec)
	a.logger.Info("profile applied", "profile", rec)

	if err := a.output.WriteProfile(rec); err != nil {
		a.logger.Warn("writing profile record failed", "error", err)
	}
}

// logPerf emits perf stats every log interval when enabled.
func (a *App) logPerf() {
	if !a.opts.LogStats && a.output == nil {
		return
	}
	interval := time.Duration(a.cfg.Telemetry.LogInterval * float64(time.Second))
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if a.lastLog.IsZero() {
		a.lastLog = a.now
		return
	}
	if a.now.Sub(a.lastLog) < interval {
		return
	}
	a.lastLog = a.now

	stats := a.perf.Stats()
	frame := a.view.Stats()
	if a.opts.LogStats {
		a.logger.Info("perf",
			"frame", a.frame,
			"particles", frame.Particles,
			"connections", frame.Connections,
			"stats", stats,
		)
	}
	if err := a.output.WritePerf(stats.ToCSV(a.frame, frame.Particles, frame.Connections)); err != nil {
		a.logger.Warn("writing perf record failed", "error", err)
	}
}
