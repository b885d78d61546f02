package container

import "sync/atomic"

// resolutionStack is the ordered set of abstracts currently being built by one
// top-level Make call. It is never shared between top-level calls.
type resolutionStack struct {
	ids   []string
	index map[string]int
	done  atomic.Bool
}

func newResolutionStack() *resolutionStack {
	return &resolutionStack{index: make(map[string]int)}
}

// push adds id to the stack. Re-entering an id already on the stack is a
// cycle; maxDepth <= 0 means unbounded.
func (s *resolutionStack) push(id string, maxDepth int) error {
	if at, ok := s.index[id]; ok {
		path := make([]string, 0, len(s.ids)-at+1)
		path = append(path, s.ids[at:]...)
		return &CircularDependencyError{Path: append(path, id)}
	}
	if maxDepth > 0 && len(s.ids) >= maxDepth {
		return &DepthExceededError{Abstract: id, Depth: maxDepth, Stack: s.snapshot()}
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return nil
}

func (s *resolutionStack) pop() {
	n := len(s.ids) - 1
	delete(s.index, s.ids[n])
	s.ids = s.ids[:n]
}

// top returns the abstract currently being built, or "".
func (s *resolutionStack) top() string {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[len(s.ids)-1]
}

func (s *resolutionStack) depth() int { return len(s.ids) }

func (s *resolutionStack) snapshot() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
