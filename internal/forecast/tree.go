package forecast

import (
	"cmp"
	"slices"
)

// minSplitGain is the smallest squared-error reduction accepted for a split
const minSplitGain = 1e-12

// treeNode is a CART regression tree node. Leaves have nil children.
type treeNode struct {
	Feature     int
	Threshold   float64
	Value       float64
	Left, Right *treeNode
}

func (n *treeNode) predict(x []float64) float64 {
	for n.Left != nil {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

func (n *treeNode) leaves() int {
	if n.Left == nil {
		return 1
	}
	return n.Left.leaves() + n.Right.leaves()
}

// fitTree grows a least-squares regression tree over the samples in idx, fitting targets.
func fitTree(samples []Sample, targets []float64, idx []int, depth, maxDepth, minLeaf int) *treeNode {
	sum := 0.0
	for _, i := range idx {
		sum += targets[i]
	}
	node := &treeNode{Value: sum / float64(len(idx))}

	if depth >= maxDepth || len(idx) < 2*minLeaf {
		return node
	}

	feature, threshold, left, right, ok := bestSplit(samples, targets, idx, sum, minLeaf)
	if !ok {
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = fitTree(samples, targets, left, depth+1, maxDepth, minLeaf)
	node.Right = fitTree(samples, targets, right, depth+1, maxDepth, minLeaf)
	return node
}

// bestSplit finds the feature and threshold that minimize the summed squared error of
// both children. Minimizing SSE is equivalent to maximizing sumL²/nL + sumR²/nR.
func bestSplit(samples []Sample, targets []float64, idx []int, total float64, minLeaf int) (feature int, threshold float64, left, right []int, ok bool) {
	n := len(idx)
	bestScore := total*total/float64(n) + minSplitGain
	bestPos := -1
	var bestOrder []int

	nFeatures := len(samples[idx[0]].Features)
	for f := 0; f < nFeatures; f++ {
		order := slices.Clone(idx)
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(samples[a].Features[f], samples[b].Features[f])
		})

		leftSum := 0.0
		for pos := 1; pos < n; pos++ {
			leftSum += targets[order[pos-1]]
			if pos < minLeaf || n-pos < minLeaf {
				continue
			}
			prev, next := samples[order[pos-1]].Features[f], samples[order[pos]].Features[f]
			if prev == next {
				continue
			}
			rightSum := total - leftSum
			score := leftSum*leftSum/float64(pos) + rightSum*rightSum/float64(n-pos)
			if score > bestScore {
				bestScore = score
				bestPos = pos
				feature = f
				threshold = (prev + next) / 2
				bestOrder = order
			}
		}
	}

	if bestPos < 0 {
		return 0, 0, nil, nil, false
	}
	return feature, threshold, bestOrder[:bestPos:bestPos], bestOrder[bestPos:], true
}
