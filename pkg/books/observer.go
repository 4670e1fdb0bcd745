package books

// Operation names passed to an Observer.
const (
	OpCreate  = "create"
	OpReplace = "replace"
	OpPatch   = "patch"
	OpDelete  = "delete"
)

// Observer receives a callback after every Store mutation attempt.
// Callbacks run while the Store lock is held and must not call back into the Store.
type Observer interface {
	// OnMutation is called after a successful mutation. size is the
	// number of books stored once the mutation has been applied.
	OnMutation(op string, id int, size int)

	// OnError is called when a mutation is rejected.
	OnError(op string, err error)
}

// NoopObserver is an Observer that does nothing.
type NoopObserver struct{}

func (NoopObserver) OnMutation(op string, id int, size int) {}
func (NoopObserver) OnError(op string, err error)           {}
