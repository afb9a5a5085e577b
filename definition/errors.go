package definition

import "fmt"

// ErrUnknownState is returned when a document references a state it never
// declared.
type ErrUnknownState struct {
	Where string
	Name  string
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("%s: unknown state %q", e.Where, e.Name)
}

// ErrDuplicateState is returned when two states share a name.
type ErrDuplicateState struct {
	Name string
}

func (e *ErrDuplicateState) Error() string {
	return fmt.Sprintf("duplicate state %q", e.Name)
}

// ErrUnknownBinding is returned when a callback or guard name has no binding.
type ErrUnknownBinding struct {
	Kind string
	Name string
}

func (e *ErrUnknownBinding) Error() string {
	return fmt.Sprintf("no %s bound to %q", e.Kind, e.Name)
}

// ErrBadInterval is returned for durations that do not parse or are negative.
type ErrBadInterval struct {
	Where string
	Value string
}

func (e *ErrBadInterval) Error() string {
	return fmt.Sprintf("%s: invalid duration %q", e.Where, e.Value)
}
