package observe

import "github.com/jonwraymond/callscope/instrument"

// NewInstrument builds an Instrument whose unset sinks come from obs.
// Sinks already present on cfg are kept.
func NewInstrument(obs Observer, cfg instrument.Config) (*instrument.Instrument, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	if cfg.Logs == nil {
		cfg.Logs = obs.Logs()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = obs.Metrics()
	}
	return instrument.New(cfg)
}
