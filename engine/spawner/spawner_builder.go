package spawner

import "github.com/Carmen-Shannon/oxy-spiral/engine/diag"

// SpawnerBuilderOption is a functional option for configuring a Spawner.
type SpawnerBuilderOption func(*spawnerImpl)

// WithDiagnostics routes per-piece events to sink. A nil sink is ignored.
//
// Parameters:
//   - sink: the diagnostics sink
//
// Returns:
//   - SpawnerBuilderOption: option function to apply
func WithDiagnostics(sink diag.Sink) SpawnerBuilderOption {
	return func(s *spawnerImpl) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithGroupName sets the name given to spawned groups.
//
// Parameters:
//   - name: the group name
//
// Returns:
//   - SpawnerBuilderOption: option function to apply
func WithGroupName(name string) SpawnerBuilderOption {
	return func(s *spawnerImpl) {
		s.groupName = name
	}
}
