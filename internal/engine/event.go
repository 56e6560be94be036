package engine

// Event is a multi-cast notification carrying one argument.
type Event[T any] struct {
	listeners []func(T)
}

func (e *Event[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *Event[T]) ListenerCount() int {
	return len(e.listeners)
}
