package main

import (
	"sort"

	"github.com/AwesomeTMC/gapac/bcsv"
	"github.com/AwesomeTMC/gapac/gapadoc"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

// particleNamesColumns is ParticleNames.bcsv's schema: a string particle
// name and its LONG row index, binding Particles.jpc resource order to
// string identifiers.
var particleNamesColumns []bcsv.Column

// effectsWireColumns is AutoEffectList.bcsv's full wire schema: the
// synthetic "No" index column followed by every column gapadoc.Schema
// declares. "No" carries no information gapadoc's JSON document model
// needs, so it lives here rather than in gapadoc.Schema.
var effectsWireColumns []bcsv.Column

func init() {
	bcsv.RegisterColumnName("name")
	bcsv.RegisterColumnName("id")
	nameCol, err := bcsv.NewColumn("name", bcsv.TypeStringOffset)
	if err != nil {
		panic(err)
	}
	idCol, err := bcsv.NewColumn("id", bcsv.TypeLong)
	if err != nil {
		panic(err)
	}
	particleNamesColumns = bcsv.SequentialLayout([]bcsv.Column{nameCol, idCol})

	bcsv.RegisterColumnName("No")
	noCol, err := bcsv.NewColumn("No", bcsv.TypeLong)
	if err != nil {
		panic(err)
	}
	cols := append([]bcsv.Column{noCol}, gapadoc.Columns...)
	effectsWireColumns = bcsv.SequentialLayout(cols)
}

// decodeParticleNames reads a ParticleNames.bcsv table and returns particle
// names ordered by their "id" row index, which is the Particles.jpc
// resource order.
func decodeParticleNames(data []byte) ([]string, error) {
	table, err := bcsv.Read(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(table.Rows))
	seen := make([]bool, len(table.Rows))
	for _, row := range table.Rows {
		idx := row["id"].I32
		if idx < 0 || int(idx) >= len(names) {
			return nil, gapaerr.New(gapaerr.ValueOutOfRange, "ParticleNames row index out of range").WithTag(row["name"].Str)
		}
		if seen[idx] {
			return nil, gapaerr.New(gapaerr.DuplicateKey, "duplicate ParticleNames row index").WithTag(row["name"].Str)
		}
		seen[idx] = true
		names[idx] = row["name"].Str
	}
	return names, nil
}

// encodeParticleNames builds a ParticleNames.bcsv table from particle names
// in Particles.json's resource order: row index equals particle index,
// unreordered, matching that document's stated contract.
func encodeParticleNames(names []string) ([]byte, error) {
	rows := make([]bcsv.Row, len(names))
	for i, name := range names {
		rows[i] = bcsv.Row{"name": bcsv.String(name), "id": bcsv.Int(int32(i))}
	}
	return bcsv.Write(particleNamesColumns, rows)
}

// encodeEffects builds an AutoEffectList.bcsv table from rows already
// translated from Effects.json, writing them sorted by GroupName (as the
// game's binary search over this table requires) with "No" left at -1,
// matching a document-driven rebuild of the table.
func encodeEffects(rows []bcsv.Row) ([]byte, error) {
	wireRows := make([]bcsv.Row, len(rows))
	for i, row := range rows {
		wireRow := bcsv.Row{"No": bcsv.Int(-1)}
		for k, v := range row {
			wireRow[k] = v
		}
		wireRows[i] = wireRow
	}
	sort.SliceStable(wireRows, func(i, j int) bool {
		return wireRows[i]["GroupName"].Str < wireRows[j]["GroupName"].Str
	})
	return bcsv.Write(effectsWireColumns, wireRows)
}
