// Copyright (c) 2024 LevelGraph Go Contributors
//
// Permission is hereby granted, free of charge, to any person
// obtaining a copy of this software and associated documentation
// files (the "Software"), to deal in the Software without
// restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following
// conditions:
//
// The above copyright notice and this permission notice shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package hnsw implements an approximate-nearest-neighbor vector index
// built around a Hierarchical Navigable Small World graph, alongside a
// brute-force index used as its recall oracle.
//
// # Index Types
//
//   - BruteForceIndex: exact nearest-neighbor search over a full distance
//     matrix. O(n) query time. Used as ground truth for recall testing.
//
//   - HNSWIndex: layered proximity graph giving sublinear expected query
//     time at high recall. Construction and query both walk the layer
//     stack top to bottom.
//
//   - FilteredHNSWIndex: an HNSWIndex variant whose layer-0 search accepts
//     an allow-list of valid ids, skipping invalid candidates when
//     populating the result beam without confining graph traversal to
//     the allow-list (which would disconnect the graph).
//
// # Basic Usage
//
//	cfg := hnsw.DefaultHNSWConfig()
//	index := hnsw.NewHNSWIndex(128, hnsw.Cosine, cfg)
//
//	if err := index.Add(vectors); err != nil {
//	    log.Fatal(err)
//	}
//
//	distances, ids, err := index.Search(query, 10)
//
// # Parameter Tuning
//
// M controls the out-degree target per layer (≥2): higher M means better
// recall at the cost of memory and slower construction. EfConstruction
// controls beam width during insertion; EfSearch controls beam width
// during query. Both should be tuned together — see NewHNSWConfig.
//
// # Persistence
//
// An index's state can be written to and read back from an opaque,
// versioned blob:
//
//	if err := index.Save("index.bin"); err != nil {
//	    log.Fatal(err)
//	}
//	restored, err := hnsw.LoadHNSWIndex("index.bin")
//
// The blob format is not a cross-version compatibility surface.
//
// # Concurrency
//
// Indexes in this package are NOT safe for concurrent Add and Search.
// Callers that need concurrent reads must hold their own RWMutex around
// Add (exclusive) and Search (shared); the package performs no internal
// locking, per its single-threaded scheduling model.
package hnsw
