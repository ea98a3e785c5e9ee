// Package conflict implements the per-wave conflict cluster resolver
// (§4.3): actions that touch overlapping entities are grouped and
// ordered against each other, either by exhaustive permutation search
// or by a deterministic heuristic once the cluster grows past
// PermThreshold.
package conflict

import "sort"

// unionFind is a minimal disjoint-set structure over action indices,
// used to group a wave's actions into connected components by shared
// entity id.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// groupClusters partitions action indices [0,n) into connected
// components given a list of touched-entity-id sets per action,
// returning each component's member indices in ascending order.
func groupClusters(touched [][]string) [][]int {
	n := len(touched)
	uf := newUnionFind(n)

	byEntity := map[string][]int{}
	for i, ids := range touched {
		for _, id := range ids {
			byEntity[id] = append(byEntity[id], i)
		}
	}
	for _, members := range byEntity {
		for i := 1; i < len(members); i++ {
			uf.union(members[0], members[i])
		}
	}

	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	clusters := make([][]int, 0, len(groups))
	for _, members := range groups {
		sort.Ints(members)
		clusters = append(clusters, members)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}
