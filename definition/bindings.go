package definition

import "github.com/enetx/tickfsm"

// Bindings resolves the callback and guard names used by a document.
//
// When Fallback is set, unknown callback names resolve to Fallback(name)
// instead of failing the build. Guards have no fallback.
type Bindings struct {
	Callbacks map[string]tickfsm.Callback
	Guards    map[string]tickfsm.GuardFunc
	Fallback  func(name string) tickfsm.Callback
}

func (b Bindings) callback(name string) (tickfsm.Callback, error) {
	if cb, ok := b.Callbacks[name]; ok && cb != nil {
		return cb, nil
	}

	if b.Fallback != nil {
		return b.Fallback(name), nil
	}

	return nil, &ErrUnknownBinding{Kind: "callback", Name: name}
}

func (b Bindings) guard(name string) (tickfsm.GuardFunc, error) {
	if fn, ok := b.Guards[name]; ok && fn != nil {
		return fn, nil
	}

	return nil, &ErrUnknownBinding{Kind: "guard", Name: name}
}
