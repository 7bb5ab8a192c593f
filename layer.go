package hnsw

import "container/heap"

// candidate is a (distance, id) pair used throughout beam search and
// neighbor selection. Smaller distance sorts first.
type candidate struct {
	dist float32
	id   int
}

// candHeap is a binary heap of candidates. minHeap selects ascending
// order (closest on top, used for the beam-search frontier); the
// non-min mode selects descending order (farthest on top, used for the
// bounded result set so the single worst element is cheap to find and
// evict).
type candHeap struct {
	items   []candidate
	minHeap bool
}

func (h *candHeap) Len() int { return len(h.items) }

func (h *candHeap) Less(i, j int) bool {
	if h.minHeap {
		return h.items[i].dist < h.items[j].dist
	}
	return h.items[i].dist > h.items[j].dist
}

func (h *candHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *candHeap) Push(x any) { h.items = append(h.items, x.(candidate)) }

func (h *candHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

func (h *candHeap) peek() candidate { return h.items[0] }

func newCandHeap(minHeap bool) *candHeap {
	h := &candHeap{minHeap: minHeap}
	heap.Init(h)
	return h
}

// hnswLayer is one level of the HNSW graph stack: an undirected graph
// whose vertex set is a subset of ids, with edges weighted by the
// distance cached at connection time so affected neighbors can be
// re-pruned without recomputing distances against the query.
type hnswLayer struct {
	adj  map[int]map[int]float32
	mMax int
}

func newHNSWLayer(mMax int) *hnswLayer {
	return &hnswLayer{adj: make(map[int]map[int]float32), mMax: mMax}
}

func (l *hnswLayer) has(id int) bool {
	_, ok := l.adj[id]
	return ok
}

func (l *hnswLayer) len() int { return len(l.adj) }

func (l *hnswLayer) degree(id int) int { return len(l.adj[id]) }

// addNode registers id as an isolated vertex if it is not already
// present.
func (l *hnswLayer) addNode(id int) {
	if _, ok := l.adj[id]; !ok {
		l.adj[id] = make(map[int]float32)
	}
}

// connect records a symmetric, weighted edge between a and b.
func (l *hnswLayer) connect(a, b int, dist float32) {
	l.addNode(a)
	l.addNode(b)
	l.adj[a][b] = dist
	l.adj[b][a] = dist
}

// setNeighbors replaces id's adjacency with exactly the given set,
// keeping every mirrored back-edge in sync: neighbors no longer present
// have their reverse edge to id removed, and new neighbors get a fresh
// mirrored edge.
func (l *hnswLayer) setNeighbors(id int, neighbors []candidate) {
	old := l.adj[id]
	keep := make(map[int]float32, len(neighbors))
	for _, n := range neighbors {
		keep[n.id] = n.dist
	}
	for other := range old {
		if _, ok := keep[other]; !ok {
			delete(l.adj[other], id)
		}
	}
	l.adj[id] = keep
	for other, dist := range keep {
		l.addNode(other)
		l.adj[other][id] = dist
	}
}

// distanceFunc computes the distance from an implicit anchor (a query
// vector not yet stored, or an already-stored vector) to a stored id.
// search and selectNeighbors are built against this abstraction so the
// same code serves both fresh inserts (anchor = new vector) and
// re-pruning (anchor = an existing, overfull node).
type distanceFunc func(id int) float32

// pairDistanceFunc computes the vector distance between two already
// stored ids. The heuristic selector uses this to test whether a
// candidate is closer to the query than to an already-admitted
// neighbor, which distTo alone (anchor-relative) cannot answer.
type pairDistanceFunc func(a, b int) float32

// search runs bounded best-first beam search from ep with width ef,
// returning up to ef (distance, id) pairs sorted ascending by distance.
//
// When valid is non-nil, the result set only admits ids present in
// valid: if ep itself is not in valid, the result starts empty and the
// early-termination comparison against the worst current result is
// skipped until something is admitted. Traversal (visited/candidates)
// always admits any reachable id regardless of valid, so the walk is
// never confined to the allow-list.
func (l *hnswLayer) search(distTo distanceFunc, ep int, ef int, valid map[int]bool) []candidate {
	visited := map[int]bool{ep: true}
	epDist := distTo(ep)

	candidates := newCandHeap(true)
	heap.Push(candidates, candidate{epDist, ep})

	result := newCandHeap(false)
	if valid == nil || valid[ep] {
		heap.Push(result, candidate{epDist, ep})
	}

	for candidates.Len() > 0 {
		c := heap.Pop(candidates).(candidate)

		if result.Len() > 0 {
			f := result.peek()
			if c.dist > f.dist {
				break
			}
		}

		for e := range l.adj[c.id] {
			if visited[e] {
				continue
			}
			visited[e] = true
			eDist := distTo(e)

			admit := result.Len() == 0 || result.Len() < ef || eDist < result.peek().dist
			if !admit {
				continue
			}
			heap.Push(candidates, candidate{eDist, e})

			if valid != nil && !valid[e] {
				continue
			}
			heap.Push(result, candidate{eDist, e})
			if result.Len() > ef {
				heap.Pop(result)
			}
		}
	}

	out := make([]candidate, result.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(result).(candidate)
	}
	return out
}

// insert wires newID into the layer. If the layer is empty, newID
// becomes an isolated node. Otherwise a beam search from ep seeds the
// neighbor selector, symmetric edges are added to the selected
// neighbors, and any neighbor now over its degree cap is re-pruned from
// its own current adjacency (no distance recomputation against q is
// needed for that step — cached edge weights are reused).
func (l *hnswLayer) insert(cfg HNSWConfig, distTo distanceFunc, pairDist pairDistanceFunc, newID, ep int) {
	if l.len() == 0 {
		l.addNode(newID)
		return
	}

	found := l.search(distTo, ep, cfg.EfConstruction, nil)
	selected := l.selectNeighbors(cfg, distTo, pairDist, found, cfg.M)

	l.addNode(newID)
	for _, n := range selected {
		l.connect(newID, n.id, n.dist)
	}

	for _, n := range selected {
		if l.degree(n.id) > l.mMax {
			l.reprune(cfg, pairDist, n.id)
		}
	}
}

// reprune recomputes id's neighbor set from its own current adjacency
// (using cached edge weights as the anchor-distance values, so no vector
// distance against id itself is recomputed) and replaces its edges with
// the new selection, capped at the layer's degree limit. Pairwise
// comparisons within the heuristic selector still use pairDist, which is
// a genuine vector distance between two stored ids.
func (l *hnswLayer) reprune(cfg HNSWConfig, pairDist pairDistanceFunc, id int) {
	current := l.adj[id]
	cands := make([]candidate, 0, len(current))
	for other, dist := range current {
		cands = append(cands, candidate{dist, other})
	}
	distTo := func(other int) float32 { return current[other] }
	selected := l.selectNeighbors(cfg, distTo, pairDist, cands, l.mMax)
	l.setNeighbors(id, selected)
}

// selectNeighbors dispatches to the configured selector, capping the
// result at m members.
func (l *hnswLayer) selectNeighbors(cfg HNSWConfig, distTo distanceFunc, pairDist pairDistanceFunc, found []candidate, m int) []candidate {
	switch cfg.Neighbors {
	case SelectHeuristic:
		return l.selectNeighborsHeuristic(cfg, distTo, pairDist, found, m)
	default:
		return selectNeighborsSimple(found, m)
	}
}

// selectNeighborsSimple keeps the m smallest-distance candidates. found
// is already sorted ascending by the caller (search's output contract),
// so this is a straight truncation.
func selectNeighborsSimple(found []candidate, m int) []candidate {
	if len(found) <= m {
		return found
	}
	return found[:m]
}

// selectNeighborsHeuristic admits a candidate e into R iff R is empty or
// e is closer to the anchor than to every member already in R, which
// favors a well-spread, diverse neighbor set over clustered data.
// Rejected candidates accumulate in w_d; if cfg.KeepPrunedConnections
// and R falls short of m after exhaustion, R is topped up from w_d in
// ascending-distance order.
func (l *hnswLayer) selectNeighborsHeuristic(cfg HNSWConfig, distTo distanceFunc, pairDist pairDistanceFunc, found []candidate, m int) []candidate {
	pool := found
	if cfg.ExtendCandidates {
		pool = l.extendCandidates(distTo, found)
	}

	sorted := make([]candidate, len(pool))
	copy(sorted, pool)
	sortCandidatesAscending(sorted)

	var r []candidate
	var wd []candidate

	for _, e := range sorted {
		admit := len(r) == 0
		if !admit {
			admit = true
			for _, keep := range r {
				if e.dist >= pairDist(e.id, keep.id) {
					admit = false
					break
				}
			}
		}
		if admit {
			r = append(r, e)
		} else {
			wd = append(wd, e)
		}
	}

	if cfg.KeepPrunedConnections && len(r) < m {
		sortCandidatesAscending(wd)
		for _, e := range wd {
			if len(r) >= m {
				break
			}
			r = append(r, e)
		}
	}

	sortCandidatesAscending(r)
	if len(r) > m {
		r = r[:m]
	}
	return r
}

// extendCandidates widens found with the layer neighbors of every
// candidate already in found, deduplicating by id and computing a fresh
// anchor distance for any newly introduced id.
func (l *hnswLayer) extendCandidates(distTo distanceFunc, found []candidate) []candidate {
	seen := make(map[int]bool, len(found))
	out := make([]candidate, 0, len(found))
	for _, c := range found {
		if !seen[c.id] {
			seen[c.id] = true
			out = append(out, c)
		}
	}
	for _, c := range found {
		for e := range l.adj[c.id] {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, candidate{distTo(e), e})
		}
	}
	return out
}

func sortCandidatesAscending(c []candidate) {
	// insertion sort: candidate slices here are bounded by ef_construction,
	// small enough that a simple sort is not worth importing sort for.
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].dist < c[j-1].dist; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}
