package idutil

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init sets the snowflake node id of this instance. It must be unique
// across instances publishing events.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}

	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenerateEventID returns a time-ordered id, initializing node 0 on first use.
func GenerateEventID() snowflake.ID {
	mu.Lock()
	defer mu.Unlock()

	if node == nil {
		// node 0 is always valid.
		node, _ = snowflake.NewNode(0)
	}

	return node.Generate()
}

func TimeOf(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
