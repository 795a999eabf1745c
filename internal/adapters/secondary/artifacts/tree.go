package artifacts

import (
	"encoding/json"

	"disease-diagnosis-service/internal/core/domain"
)

type treeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeParams struct {
	Nodes []treeNode `json:"nodes"`
}

// decisionTree walks flat nodes from the root; x[feature] <= threshold goes
// left. Children always sit after their parent, so every walk terminates.
type decisionTree struct {
	meta  domain.ArtifactMeta
	nodes []treeNode
}

func decodeDecisionTree(meta domain.ArtifactMeta, raw json.RawMessage) (*decisionTree, error) {
	var p treeParams
	if err := decodeParams(meta, raw, &p); err != nil {
		return nil, err
	}
	if len(p.Nodes) == 0 {
		return nil, corrupt("%s: no nodes", meta.Kind)
	}
	for i, n := range p.Nodes {
		if n.IsLeaf {
			if n.ClassLabel != 0 && n.ClassLabel != 1 {
				return nil, corrupt("%s: node %d has class %d", meta.Kind, i, n.ClassLabel)
			}
			continue
		}
		if n.FeatureIdx < 0 || n.FeatureIdx >= meta.NumFeatures {
			return nil, corrupt("%s: node %d feature index %d out of range", meta.Kind, i, n.FeatureIdx)
		}
		if !finite(n.Threshold) {
			return nil, corrupt("%s: node %d threshold is not finite", meta.Kind, i)
		}
		for _, child := range []int{n.LeftChild, n.RightChild} {
			if child <= i || child >= len(p.Nodes) {
				return nil, corrupt("%s: node %d has invalid child %d", meta.Kind, i, child)
			}
		}
	}
	return &decisionTree{meta: meta, nodes: p.Nodes}, nil
}

func (t *decisionTree) Meta() domain.ArtifactMeta {
	return t.meta
}

func (t *decisionTree) Predict(features domain.FeatureVector) (int, error) {
	if err := checkInput(t.meta, features); err != nil {
		return 0, err
	}
	idx := 0
	for {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
