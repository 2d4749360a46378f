package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// LoadTSV reads a tab-separated expression file with a header row. The first
// column is the sample identifier, the last column is the label ("y",
// values -1 or +1), and every column in between is a float64 expression
// value. Any malformed row aborts the load.
func LoadTSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadTSV: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1 // field count is validated per row for better messages

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "LoadTSV: parse %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NewDataError("LoadTSV", path, 0, "empty file")
	}

	header := records[0]
	if len(header) < 3 {
		return nil, errors.NewDataError("LoadTSV", path, 1,
			"header must have at least an id column, one feature column and a label column")
	}
	nFeatures := len(header) - 2
	featureNames := make([]string, nFeatures)
	copy(featureNames, header[1:len(header)-1])

	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.NewDataError("LoadTSV", path, 1, "no data rows after header")
	}

	ids := make([]string, len(rows))
	y := make([]float64, len(rows))
	x := mat.NewDense(len(rows), nFeatures, nil)

	for i, rec := range rows {
		line := i + 2 // 1-based, after header
		if len(rec) != len(header) {
			return nil, errors.NewDataError("LoadTSV", path, line,
				"wrong field count: expected "+strconv.Itoa(len(header))+", got "+strconv.Itoa(len(rec)))
		}
		ids[i] = rec[0]
		for j := 0; j < nFeatures; j++ {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, errors.NewDataError("LoadTSV", path, line,
					"invalid numeric value '"+rec[j+1]+"' in column "+featureNames[j])
			}
			x.Set(i, j, v)
		}
		label, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil || (label != -1 && label != 1) {
			return nil, errors.NewDataError("LoadTSV", path, line,
				"label must be -1 or 1, got '"+rec[len(rec)-1]+"'")
		}
		y[i] = label
	}

	return &Table{IDs: ids, FeatureNames: featureNames, X: x, Y: y}, nil
}
