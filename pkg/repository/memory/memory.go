package memory

import (
	"errors"

	"github.com/secmon-lab/doorman/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = errors.New("not found")

// Memory is the in-process repository. Both registries live for the
// process lifetime; there is no external persistence.
type Memory struct {
	onboarding *onboardingRepository
	counter    *counterRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		onboarding: newOnboardingRepository(),
		counter:    newCounterRepository(),
	}
}

func (m *Memory) Onboarding() interfaces.OnboardingRepository {
	return m.onboarding
}

func (m *Memory) Counter() interfaces.CounterRepository {
	return m.counter
}

func (m *Memory) Close() error {
	return nil
}
