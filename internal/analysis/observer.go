package analysis

// Observer receives intermediate values (detected shift, chosen key length,
// per-column scores) as structured key/value pairs. It is never required for
// correctness. github.com/baditaflorin/l loggers satisfy it.
type Observer interface {
	Debug(msg string, keysAndValues ...interface{})
}

type nopObserver struct{}

func (nopObserver) Debug(string, ...interface{}) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
