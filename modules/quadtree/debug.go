package quadtree

// DebugInfo describes the current shape of a tree.
type DebugInfo struct {
	MaxObjects   int `json:"max_objects"`
	MaxLevels    int `json:"max_levels"`
	NodeCount    int `json:"node_count"`
	LeafCount    int `json:"leaf_count"`
	Depth        int `json:"depth"`
	ItemCount    int `json:"item_count"`
	MaxNodeItems int `json:"max_node_items"`
}

func (t *Tree) GetDebugInfo() DebugInfo {
	info := DebugInfo{
		MaxObjects: t.MaxObjects,
		MaxLevels:  t.MaxLevels,
	}
	t.root.debugInfo(&info)
	return info
}

func (n *node) debugInfo(info *DebugInfo) {
	info.NodeCount++
	info.ItemCount += len(n.items)
	if n.level > info.Depth {
		info.Depth = n.level
	}
	if len(n.items) > info.MaxNodeItems {
		info.MaxNodeItems = len(n.items)
	}

	if n.children == nil {
		info.LeafCount++
		return
	}
	for i := range n.children {
		n.children[i].debugInfo(info)
	}
}
