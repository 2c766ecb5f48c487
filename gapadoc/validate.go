package gapadoc

import (
	"github.com/AwesomeTMC/gapac/bcsv"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

// ValidateParticles checks that Particles.json's particle and texture name
// lists contain no duplicates.
func ValidateParticles(doc *ParticlesDoc) error {
	seen := map[string]bool{}
	for _, name := range doc.Particles {
		if seen[name] {
			return gapaerr.New(gapaerr.DuplicateKey, "duplicate particle name").WithTag(name)
		}
		seen[name] = true
	}
	seenTex := map[string]bool{}
	for _, name := range doc.Textures {
		if seenTex[name] {
			return gapaerr.New(gapaerr.DuplicateKey, "duplicate texture name").WithTag(name)
		}
		seenTex[name] = true
	}
	return nil
}

// ValidateEffects checks AutoEffectList invariants across the full row set:
// UniqueName is unique within its GroupName, and every non-empty ParentName
// resolves to some row's UniqueName within the same GroupName.
func ValidateEffects(rows []bcsv.Row) error {
	uniqueNames := map[string]map[string]bool{} // groupName -> set of uniqueNames
	for _, row := range rows {
		group := row["GroupName"].Str
		unique := row["UniqueName"].Str
		set := uniqueNames[group]
		if set == nil {
			set = map[string]bool{}
			uniqueNames[group] = set
		}
		if set[unique] {
			return gapaerr.New(gapaerr.DuplicateKey, "duplicate UniqueName within GroupName").WithTag(group + "/" + unique)
		}
		set[unique] = true
	}
	for _, row := range rows {
		parent := row["ParentName"].Str
		if parent == "" {
			continue
		}
		group := row["GroupName"].Str
		if !uniqueNames[group][parent] {
			return gapaerr.New(gapaerr.DanglingReference, "ParentName does not resolve to a UniqueName in the same GroupName").WithTag(group + "/" + parent)
		}
	}
	return nil
}

// ValidateParticleTextures checks that every texture name a particle
// document references is present in the container's texture pool.
func ValidateParticleTextures(doc *ParticleDoc, textureNames []string) error {
	known := map[string]bool{}
	for _, n := range textureNames {
		known[n] = true
	}
	for _, t := range doc.Textures {
		if !known[t] {
			return gapaerr.New(gapaerr.DanglingReference, "particle references unknown texture").WithTag(t)
		}
	}
	return nil
}
