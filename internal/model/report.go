package model

import "fmt"

// TestStatus represents the status of a mutation test.
type TestStatus int

const (
	// Killed indicates the mutation was detected by tests.
	Killed TestStatus = iota
	// Survived indicates the mutation was not detected by tests.
	Survived
	// Skipped indicates the mutation was skipped.
	Skipped
	// Timeout indicates the tests did not finish in time.
	Timeout
	// Error indicates an error occurred during testing.
	Error
)

func (s TestStatus) String() string {
	switch s {
	case Killed:
		return "killed"
	case Survived:
		return "survived"
	case Skipped:
		return "skipped"
	case Timeout:
		return "timeout"
	case Error:
		return "error"
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s TestStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *TestStatus) UnmarshalText(text []byte) error {
	for _, status := range []TestStatus{Killed, Survived, Skipped, Timeout, Error} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown test status %q", string(text))
}

// Report is the outcome of testing one mutation.
type Report struct {
	MutationID string     `yaml:"mutation_id"`
	Source     Source     `yaml:"source"`
	Operator   string     `yaml:"operator"`
	Site       Site       `yaml:"site"`
	Status     TestStatus `yaml:"status"`
	Diff       string     `yaml:"diff,omitempty"`
	Output     string     `yaml:"output,omitempty"`
	Err        string     `yaml:"error,omitempty"`
}
