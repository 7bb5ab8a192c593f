// Package dataset reads the ANN_SIFT10K benchmark files used by the
// HNSW recall tests. It does not download anything: callers point it at
// files already present on disk.
package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ReadFVecs reads a .fvecs file: a sequence of records, each a
// little-endian int32 dimension count followed by that many
// little-endian float32 values. Every record in a well-formed file
// shares the same dimension.
func ReadFVecs(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var out [][]float32
	for {
		dim, err := readDim(f)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		row := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// ReadIVecs reads a .ivecs file: the same record framing as .fvecs but
// with little-endian int32 payload values instead of float32.
func ReadIVecs(path string) ([][]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var out [][]int32
	for {
		dim, err := readDim(f)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		row := make([]int32, dim)
		if err := binary.Read(f, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func readDim(f *os.File) (int32, error) {
	var dim int32
	err := binary.Read(f, binary.LittleEndian, &dim)
	return dim, err
}

// SIFT10K holds the three pieces of the ANN_SIFT10K benchmark needed by
// recall tests.
type SIFT10K struct {
	Base    [][]float32 // 10000 x 128
	Queries [][]float32 // 100 x 128
	Truth   []int       // 100, nearest base id per query
}

// LoadSIFT10K reads siftsmall_base.fvecs, siftsmall_query.fvecs, and
// siftsmall_groundtruth.ivecs from dir, collapsing the
// ground-truth file's per-query neighbor list down to its first (and
// therefore nearest) id.
func LoadSIFT10K(dir string) (*SIFT10K, error) {
	base, err := ReadFVecs(dir + "/siftsmall_base.fvecs")
	if err != nil {
		return nil, err
	}
	queries, err := ReadFVecs(dir + "/siftsmall_query.fvecs")
	if err != nil {
		return nil, err
	}
	truthRows, err := ReadIVecs(dir + "/siftsmall_groundtruth.ivecs")
	if err != nil {
		return nil, err
	}

	truth := make([]int, len(truthRows))
	for i, row := range truthRows {
		if len(row) == 0 {
			return nil, fmt.Errorf("dataset: groundtruth row %d is empty", i)
		}
		truth[i] = int(row[0])
	}

	return &SIFT10K{Base: base, Queries: queries, Truth: truth}, nil
}
