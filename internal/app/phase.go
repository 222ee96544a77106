package app

// Phase names the stage a run is in.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseComputing Phase = "computing"
	PhaseWriting   Phase = "writing"
	PhaseDone      Phase = "done"
	PhaseFailed    Phase = "failed"
)

// Phase reports the current stage. Safe for concurrent use.
func (a *App) Phase() Phase {
	return a.phase.Load().(Phase)
}

func (a *App) setPhase(p Phase) {
	a.phase.Store(p)
	a.logger.Debug("Phase changed.", "phase", p)
}
