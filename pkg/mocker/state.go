package mocker

import "strings"

// GenerateState holds information about the current position in the schema tree.
//
// NamePath is the list of object field names leading to the current node,
// for example "user", "address", "city". Array elements, map values and
// union variants do not add a segment: they share the path of their container.
type GenerateState struct {
	NamePath []string
}

// GenerateStateOption configures a GenerateState.
type GenerateStateOption func(*GenerateState)

func NewGenerateState(opts ...GenerateStateOption) *GenerateState {
	return (&GenerateState{
		NamePath: []string{},
	}).WithOptions(opts...)
}

// NewFrom copies the state so that children do not share the NamePath slice.
func (s *GenerateState) NewFrom() *GenerateState {
	namePath := make([]string, len(s.NamePath))
	copy(namePath, s.NamePath)

	return &GenerateState{
		NamePath: namePath,
	}
}

func (s *GenerateState) WithOptions(options ...GenerateStateOption) *GenerateState {
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithName appends a field name to the path.
func WithName(name string) GenerateStateOption {
	return func(state *GenerateState) {
		state.NamePath = append(state.NamePath, name)
	}
}

// Path returns the dotted field path, empty at the root.
func (s *GenerateState) Path() string {
	return strings.Join(s.NamePath, ".")
}
