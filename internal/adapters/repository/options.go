package repository

// options collects MemStore construction parameters.
type options struct {
	shardCount int
}

// Option applies a configuration option to the MemStore.
type Option func(*options)

// WithShardCount sets the number of shards.
func WithShardCount(count int) Option {
	return func(o *options) {
		if count > 0 {
			o.shardCount = count
		}
	}
}
