package gapadoc

import (
	"bytes"
	"encoding/json"

	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/AwesomeTMC/gapac/jpa"
	"github.com/bytedance/sonic"
)

// ParticleDoc is the JSON shape of one Particles/<name>.json file. Block
// fields are emitted in full, never default-stripped, because their
// presence is discriminated by flag words rather than a static schema.
type ParticleDoc struct {
	DynamicsBlock *jpa.DynamicsBlock `json:"dynamicsBlock"`
	FieldBlocks   []*jpa.FieldBlock  `json:"fieldBlocks"`
	KeyBlocks     []*jpa.KeyBlock    `json:"keyBlocks"`
	BaseShape     *jpa.BaseShape     `json:"baseShape"`
	ExtraShape    *jpa.ExtraShape    `json:"extraShape"`
	ChildShape    *jpa.ChildShape    `json:"childShape,omitempty"`
	ExTexShape    *jpa.ExTexShape    `json:"exTexShape,omitempty"`
	Textures      []string           `json:"textures"`
}

// ParticleFromResource translates a decoded JPA resource into its JSON
// document, resolving texture indices against the container's texture pool.
func ParticleFromResource(res *jpa.Resource, textureNames []string) (*ParticleDoc, error) {
	textures := make([]string, 0, len(res.TextureIndices))
	for _, idx := range res.TextureIndices {
		if idx < 0 || int(idx) >= len(textureNames) {
			return nil, gapaerr.New(gapaerr.DanglingReference, "texture index out of range").WithOffset(int64(idx))
		}
		textures = append(textures, textureNames[idx])
	}
	return &ParticleDoc{
		DynamicsBlock: res.Dynamics,
		FieldBlocks:   res.Fields,
		KeyBlocks:     res.Keys,
		BaseShape:     res.BaseShape,
		ExtraShape:    res.ExtraShape,
		ChildShape:    res.ChildShape,
		ExTexShape:    res.ExTexShape,
		Textures:      textures,
	}, nil
}

// ParticleToResource translates a particle JSON document back into a JPA
// resource, resolving texture names against textureIndex. The resource's
// Index is left for the caller to set (it is container-level bookkeeping,
// not part of the document); the header's block and texture counts are
// recomputed by jpa.WriteResource.
func ParticleToResource(doc *ParticleDoc, textureIndex map[string]int) (*jpa.Resource, error) {
	res := &jpa.Resource{
		Dynamics:   doc.DynamicsBlock,
		Fields:     doc.FieldBlocks,
		Keys:       doc.KeyBlocks,
		BaseShape:  doc.BaseShape,
		ExtraShape: doc.ExtraShape,
		ChildShape: doc.ChildShape,
		ExTexShape: doc.ExTexShape,
	}
	for _, name := range doc.Textures {
		idx, ok := textureIndex[name]
		if !ok {
			return nil, gapaerr.New(gapaerr.DanglingReference, "particle references unknown texture").WithTag(name)
		}
		res.TextureIndices = append(res.TextureIndices, int16(idx))
	}
	return res, nil
}

// MarshalParticle renders doc as 2-space-indented JSON. doc's field order
// fixes the document's top-level key order, so no OrderedMap staging is
// needed the way Effects.json's dynamic rows require.
func MarshalParticle(doc *ParticleDoc) ([]byte, error) {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "marshaling particle")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "indenting particle JSON")
	}
	return pretty.Bytes(), nil
}

// UnmarshalParticle parses a Particles/<name>.json document.
func UnmarshalParticle(data []byte) (*ParticleDoc, error) {
	doc := &ParticleDoc{}
	if err := sonic.Unmarshal(data, doc); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "unmarshaling particle")
	}
	return doc, nil
}

// ParticlesDoc is the JSON shape of Particles.json: the ordered particle
// name list (ParticleNames.bcsv row order is the resource index) and the
// ordered texture name list (container texture-pool order).
type ParticlesDoc struct {
	Particles []string `json:"particles"`
	Textures  []string `json:"textures"`
}

// MarshalParticles renders doc as 2-space-indented JSON.
func MarshalParticles(doc *ParticlesDoc) ([]byte, error) {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "marshaling Particles.json")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "indenting Particles.json")
	}
	return pretty.Bytes(), nil
}

// UnmarshalParticles parses a Particles.json document.
func UnmarshalParticles(data []byte) (*ParticlesDoc, error) {
	doc := &ParticlesDoc{}
	if err := sonic.Unmarshal(data, doc); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "unmarshaling Particles.json")
	}
	return doc, nil
}
