package io

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/collabgraph/pkg/interaction"
)

// Dataset is a decoded interaction dataset.
type Dataset struct {
	Records []interaction.Record
	// Hash is the SHA-256 of the raw input, hex encoded.
	Hash string
	// Source is the file the dataset came from, if any.
	Source string
}

type datasetDoc struct {
	Records []recordDoc `json:"records"`
}

type recordDoc struct {
	Category    string `json:"category"`
	Actor       string `json:"actor"`
	ActedUpon   string `json:"acted_upon"`
	Occurrences int    `json:"occurrences,omitempty"`
	State       string `json:"state,omitempty"`
	Reaction    string `json:"reaction,omitempty"`
}

// ReadDataset decodes a dataset from r. ReadDataset does not close r.
func ReadDataset(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc datasetDoc
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	ds := &Dataset{Records: make([]interaction.Record, len(doc.Records))}
	for i, rd := range doc.Records {
		cat, err := interaction.ParseCategory(rd.Category)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ds.Records[i] = interaction.Record{
			Category:    cat,
			Actor:       rd.Actor,
			ActedUpon:   rd.ActedUpon,
			Occurrences: rd.Occurrences,
			State:       rd.State,
			Reaction:    rd.Reaction,
		}
	}
	sum := sha256.Sum256(raw)
	ds.Hash = hex.EncodeToString(sum[:])
	return ds, nil
}

// ImportDataset reads a dataset file at path.
func ImportDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	ds, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// WriteDataset encodes records in the dataset format.
func WriteDataset(records []interaction.Record, w io.Writer) error {
	doc := datasetDoc{Records: make([]recordDoc, len(records))}
	for i, r := range records {
		doc.Records[i] = recordDoc{
			Category:    string(r.Category),
			Actor:       r.Actor,
			ActedUpon:   r.ActedUpon,
			Occurrences: r.Occurrences,
			State:       r.State,
			Reaction:    r.Reaction,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
