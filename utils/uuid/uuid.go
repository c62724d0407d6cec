package uuid

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

// SnowNode snowflake id生成节点，数据库主键统一从这里出
type SnowNode struct {
	node *snowflake.Node
}

func NewNode(nodeId int64) *SnowNode {
	node, err := snowflake.NewNode(nodeId)
	if err != nil {
		log.Fatalf("snowflake node init failed: %v", err)
	}
	return &SnowNode{node: node}
}

func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}
