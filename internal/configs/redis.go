package config

import (
	"github.com/redis/rueidis"
)

// NewRedisClient connects to addr. An empty addr means Redis is not
// configured and yields a nil client.
func NewRedisClient(addr string) (rueidis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	return rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
}
