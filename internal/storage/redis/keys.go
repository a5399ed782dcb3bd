package redis

import "fmt"

// Key prefix for all league data
const keyPrefix = "kmnx"

// dataKey returns the Redis key holding the whole league document
func dataKey() string {
	return fmt.Sprintf("%s:data", keyPrefix)
}
