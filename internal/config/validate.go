package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the model for values the checker cannot work with.
func (m *Model) Validate() error {
	var errs []error

	if m.Checker.RoundTimeout <= 0 {
		errs = append(errs, fmt.Errorf("round_timeout must be positive, got %s", m.Checker.RoundTimeout))
	}
	if m.Checker.StalenessThreshold < 0 {
		errs = append(errs, fmt.Errorf("staleness_threshold cannot be negative, got %s", m.Checker.StalenessThreshold))
	}
	if m.Checker.MaxRounds < 0 {
		errs = append(errs, fmt.Errorf("max_rounds cannot be negative, got %d", m.Checker.MaxRounds))
	}
	for _, topic := range m.Checker.ImportantTopics {
		if !strings.HasPrefix(topic, "/") {
			errs = append(errs, fmt.Errorf("important topic %q must be fully qualified", topic))
		}
	}

	switch m.Introspection.Backend {
	case BackendSnapshot:
	case BackendSocketIO:
		if m.Introspection.URL == "" {
			errs = append(errs, errors.New("introspection \"socketio\" requires url"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown introspection backend %q", m.Introspection.Backend))
	}

	return errors.Join(errs...)
}
