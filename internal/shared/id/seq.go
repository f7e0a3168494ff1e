// Package id generates transaction sequence numbers for recharge and
// consumption records.
package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeErr  error
)

// Init binds the generator to a node id in [0, 1023]. Later calls are no-ops.
func Init(nodeID int64) error {
	nodeOnce.Do(func() {
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	if nodeErr != nil {
		return fmt.Errorf("failed to init seq generator: %w", nodeErr)
	}
	return nil
}

// NewSeq returns a unique, time-ordered sequence number.
// The generator falls back to node 0 when Init was never called.
func NewSeq() string {
	if node == nil {
		_ = Init(0)
	}
	return node.Generate().String()
}

// NewSeqWithPrefix prefixes the sequence number, e.g. "R" for recharges.
func NewSeqWithPrefix(prefix string) string {
	return prefix + NewSeq()
}
