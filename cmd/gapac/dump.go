package main

import (
	"os"
	"path"
	"path/filepath"

	"github.com/AwesomeTMC/gapac/bcsv"
	"github.com/AwesomeTMC/gapac/bti"
	"github.com/AwesomeTMC/gapac/gapadoc"
	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/AwesomeTMC/gapac/jpa"
	"github.com/AwesomeTMC/gapac/rarc"
)

// rarcEffectDir is where pygapa-style RARC archives keep the three
// particle files.
const rarcEffectDir = "Effect"

// loadInputs reads Particles.jpc, ParticleNames.bcsv, and
// AutoEffectList.bcsv either as loose files in inputDir or, when rarcPath
// is set, from that RARC archive's Effect/ directory.
func loadInputs(inputDir, rarcPath string) (jpcData, namesData, effectsData []byte, err error) {
	if rarcPath == "" {
		jpcData, err = os.ReadFile(filepath.Join(inputDir, "Particles.jpc"))
		if err != nil {
			return nil, nil, nil, err
		}
		namesData, err = os.ReadFile(filepath.Join(inputDir, "ParticleNames.bcsv"))
		if err != nil {
			return nil, nil, nil, err
		}
		effectsData, err = os.ReadFile(filepath.Join(inputDir, "AutoEffectList.bcsv"))
		if err != nil {
			return nil, nil, nil, err
		}
		return jpcData, namesData, effectsData, nil
	}

	raw, err := os.ReadFile(rarcPath)
	if err != nil {
		return nil, nil, nil, err
	}
	arc, err := rarc.Read(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	jpcFile, err := rarc.FindFile(arc.Root, path.Join(rarcEffectDir, "Particles.jpc"))
	if err != nil {
		return nil, nil, nil, err
	}
	namesFile, err := rarc.FindFile(arc.Root, path.Join(rarcEffectDir, "ParticleNames.bcsv"))
	if err != nil {
		return nil, nil, nil, err
	}
	effectsFile, err := rarc.FindFile(arc.Root, path.Join(rarcEffectDir, "AutoEffectList.bcsv"))
	if err != nil {
		return nil, nil, nil, err
	}
	return jpcFile.Data, namesFile.Data, effectsFile.Data, nil
}

func runDump(inputDir, outputDir, rarcPath string) error {
	jpcData, namesData, effectsData, err := loadInputs(inputDir, rarcPath)
	if err != nil {
		return err
	}

	container, err := jpa.Read(jpcData)
	if err != nil {
		return err
	}
	particleNames, err := decodeParticleNames(namesData)
	if err != nil {
		return err
	}
	if len(particleNames) != len(container.Resources) {
		return gapaerr.New(gapaerr.DanglingReference, "ParticleNames row count does not match JPC resource count")
	}

	effectsTable, err := bcsv.Read(effectsData)
	if err != nil {
		return err
	}
	if err := gapadoc.ValidateEffects(effectsTable.Rows); err != nil {
		return err
	}

	particlesDir := filepath.Join(outputDir, "Particles")
	texturesDir := filepath.Join(outputDir, "Textures")
	if err := os.MkdirAll(particlesDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(texturesDir, 0o755); err != nil {
		return err
	}

	textureNames := make([]string, len(container.Textures))
	for i, tex := range container.Textures {
		textureNames[i] = tex.Name
		if _, err := bti.Read(tex.Data); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(texturesDir, tex.Name+".bti"), tex.Data, 0o644); err != nil {
			return err
		}
	}

	for i, res := range container.Resources {
		doc, err := gapadoc.ParticleFromResource(res, textureNames)
		if err != nil {
			return err
		}
		data, err := gapadoc.MarshalParticle(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(particlesDir, particleNames[i]+".json"), data, 0o644); err != nil {
			return err
		}
	}

	particlesDoc := &gapadoc.ParticlesDoc{Particles: particleNames, Textures: textureNames}
	if err := gapadoc.ValidateParticles(particlesDoc); err != nil {
		return err
	}
	particlesJSON, err := gapadoc.MarshalParticles(particlesDoc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "Particles.json"), particlesJSON, 0o644); err != nil {
		return err
	}

	effectsJSON, err := gapadoc.EffectsToJSON(effectsTable.Rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "Effects.json"), effectsJSON, 0o644); err != nil {
		return err
	}

	return nil
}
