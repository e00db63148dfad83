package metrics

const defaultQueueSize = 1000

type workerOptions struct {
	queueSize  int
	prometheus bool
}

type Option func(*workerOptions)

// WithQueueSize bounds the number of pending tasks. Tasks beyond it are dropped.
func WithQueueSize(size int) Option {
	return func(o *workerOptions) {
		if size > 0 {
			o.queueSize = size
		}
	}
}

// WithPrometheus toggles recording decision events into the prometheus registry.
func WithPrometheus(enabled bool) Option {
	return func(o *workerOptions) {
		o.prometheus = enabled
	}
}
