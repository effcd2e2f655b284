package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/petar/GoMNIST"
	"gonum.org/v1/gonum/mat"

	"github.com/INDA25PlusPlus/puhl-ml/internal/parallel"
)

// MNIST geometry.
const (
	MNISTPixels  = 28 * 28
	MNISTClasses = 10

	// PixelScale maps a raw byte into [0, 1).
	PixelScale = 256.0
)

// LoadMNIST loads the MNIST training and test sets from dir.
//
// dir must contain the four gzipped IDX files as distributed:
//   - train-images-idx3-ubyte.gz, train-labels-idx1-ubyte.gz
//   - t10k-images-idx3-ubyte.gz, t10k-labels-idx1-ubyte.gz
//
// trainLimit and testLimit cap the number of samples kept from each set;
// zero keeps all of them. Pixels are divided by PixelScale.
func LoadMNIST(dir string, trainLimit, testLimit int) (train, test *Dataset, err error) {
	trainSet, testSet, err := GoMNIST.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load mnist from %s: %w", dir, err)
	}

	train, err = fromSet(trainSet, trainLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("mnist train set: %w", err)
	}
	test, err = fromSet(testSet, testLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("mnist test set: %w", err)
	}
	return train, test, nil
}

// fromSet converts a decoded IDX set into a Dataset.
func fromSet(set *GoMNIST.Set, limit int) (*Dataset, error) {
	n := set.Count()
	if limit > 0 && n > limit {
		n = limit
	}
	if n == 0 {
		return nil, ErrNoSamples
	}
	pixels := set.NRow * set.NCol

	labels := make([]int, n)
	for j := range labels {
		image, label := set.Get(j)
		if len(image) != pixels {
			return nil, fmt.Errorf("image %d: got %d pixels, want %d", j, len(image), pixels)
		}
		labels[j] = int(label)
	}

	// Every chunk writes a disjoint set of columns.
	features := mat.NewDense(pixels, n, nil)
	parallel.Chunks(n, parallel.DefaultConfig(), func(start, end int) {
		col := make([]float64, pixels)
		for j := start; j < end; j++ {
			image, _ := set.Get(j)
			for i, px := range image {
				col[i] = float64(px) / PixelScale
			}
			features.SetCol(j, col)
		}
	})
	return NewDataset(features, labels, MNISTClasses)
}

// LoadCSV loads MNIST samples from a Kaggle-style CSV file.
//
// CSV Format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// The header row is skipped. limit caps the number of samples (0 = all).
func LoadCSV(path string, limit int) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	return readCSV(path, file, limit)
}

func readCSV(path string, r io.Reader, limit int) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSamples
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var (
		pixels []float64
		labels []int
	)
	for line := 2; limit <= 0 || len(labels) < limit; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RecordError{Path: path, Line: line, Err: err}
		}
		if len(record) != MNISTPixels+1 {
			return nil, &RecordError{Path: path, Line: line, Err: csv.ErrFieldCount}
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, &RecordError{Path: path, Line: line, Column: 1, Err: err}
		}
		if label < 0 || label >= MNISTClasses {
			return nil, &RecordError{Path: path, Line: line, Column: 1, Err: ErrLabelOutOfRange}
		}
		labels = append(labels, label)

		for c, field := range record[1:] {
			px, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return nil, &RecordError{Path: path, Line: line, Column: c + 2, Err: err}
			}
			pixels = append(pixels, float64(px)/PixelScale)
		}
	}
	if len(labels) == 0 {
		return nil, ErrNoSamples
	}

	// pixels is sample-major; transpose into [features, N].
	samples := mat.NewDense(len(labels), MNISTPixels, pixels)
	return NewDataset(mat.DenseCopyOf(samples.T()), labels, MNISTClasses)
}
