package hnsw

import (
	"bytes"
	"io"
	"os"

	"github.com/google/renameio"
	"github.com/vmihailenco/msgpack/v5"
)

// persistVersion tags the blob layout. Bump on any incompatible change
// to persistEdge/persistLayer/persistBlob; the format is not a
// compatibility surface across versions.
const persistVersion = 1

// persistEdge is one adjacency entry: the cached distance to Neighbor,
// used to re-prune without recomputing vector distances after load.
type persistEdge struct {
	Neighbor int     `msgpack:"n"`
	Dist     float32 `msgpack:"d"`
}

// persistLayer mirrors one hnswLayer: every vertex id present, each with
// its weighted edge list.
type persistLayer struct {
	Nodes []int             `msgpack:"nodes"`
	Edges map[int][]persistEdge `msgpack:"edges"`
}

// persistBlob is the opaque, versioned on-disk representation of an
// HNSWIndex. Field order here has no bearing on the wire format;
// msgpack tags carry that.
type persistBlob struct {
	Version int          `msgpack:"v"`
	D       int          `msgpack:"d"`
	Metric  Metric       `msgpack:"metric"`
	Config  HNSWConfig   `msgpack:"config"`
	Vectors [][]float32  `msgpack:"vectors"`
	L       int          `msgpack:"l"`
	Ep      int          `msgpack:"ep"`
	Layers  []persistLayer `msgpack:"layers"`
}

// SaveTo encodes idx as an opaque msgpack blob and writes it to w.
func (idx *HNSWIndex) SaveTo(w io.Writer) error {
	blob := persistBlob{
		Version: persistVersion,
		D:       idx.d,
		Metric:  idx.metric,
		Config:  idx.config,
		Vectors: idx.vectors,
		L:       idx.l,
		Ep:      idx.ep,
		Layers:  make([]persistLayer, len(idx.layers)),
	}

	for i, layer := range idx.layers {
		pl := persistLayer{
			Nodes: make([]int, 0, layer.len()),
			Edges: make(map[int][]persistEdge, layer.len()),
		}
		for id, neighbors := range layer.adj {
			pl.Nodes = append(pl.Nodes, id)
			edges := make([]persistEdge, 0, len(neighbors))
			for n, d := range neighbors {
				edges = append(edges, persistEdge{Neighbor: n, Dist: d})
			}
			pl.Edges[id] = edges
		}
		blob.Layers[i] = pl
	}

	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&blob); err != nil {
		return ioErrorf("hnsw: encode index: %w", err)
	}
	return nil
}

// LoadHNSWIndexFrom decodes an index previously written by SaveTo.
func LoadHNSWIndexFrom(r io.Reader) (*HNSWIndex, error) {
	var blob persistBlob
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&blob); err != nil {
		return nil, ioErrorf("hnsw: decode index: %w", err)
	}

	idx := &HNSWIndex{
		baseIndex: newBaseIndex(blob.D, blob.Metric),
		config:    blob.Config,
		l:         blob.L,
		ep:        blob.Ep,
	}
	idx.vectors = blob.Vectors
	idx.isTrained = len(blob.Vectors) > 0
	idx.rng = defaultRNG()
	idx.log = nopLogger()

	idx.layers = make([]*hnswLayer, len(blob.Layers))
	for i, pl := range blob.Layers {
		mMax := idx.config.MMax
		if i == 0 {
			mMax = idx.config.MMax0
		}
		layer := newHNSWLayer(mMax)
		for _, id := range pl.Nodes {
			layer.addNode(id)
		}
		for id, edges := range pl.Edges {
			for _, e := range edges {
				layer.adj[id][e.Neighbor] = e.Dist
			}
		}
		idx.layers[i] = layer
	}

	return idx, nil
}

// Save writes idx to path as an opaque blob, atomically: the file is
// either fully written or not replaced at all.
func (idx *HNSWIndex) Save(path string) error {
	var buf bytes.Buffer
	if err := idx.SaveTo(&buf); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ioErrorf("hnsw: write %s: %w", path, err)
	}
	return nil
}

// LoadHNSWIndex reads an index back from a path written by Save.
func LoadHNSWIndex(path string) (*HNSWIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf("hnsw: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadHNSWIndexFrom(f)
}
