package main

import (
	"os"
	"path/filepath"

	"github.com/AwesomeTMC/gapac/bti"
	"github.com/AwesomeTMC/gapac/gapadoc"
	"github.com/AwesomeTMC/gapac/jpa"
)

func runPack(inputDir, outputDir string) error {
	particlesJSON, err := os.ReadFile(filepath.Join(inputDir, "Particles.json"))
	if err != nil {
		return err
	}
	particlesDoc, err := gapadoc.UnmarshalParticles(particlesJSON)
	if err != nil {
		return err
	}
	if err := gapadoc.ValidateParticles(particlesDoc); err != nil {
		return err
	}

	effectsJSON, err := os.ReadFile(filepath.Join(inputDir, "Effects.json"))
	if err != nil {
		return err
	}
	effectRows, err := gapadoc.EffectsFromJSON(effectsJSON)
	if err != nil {
		return err
	}
	if err := gapadoc.ValidateEffects(effectRows); err != nil {
		return err
	}

	textureIndex := make(map[string]int, len(particlesDoc.Textures))
	for i, name := range particlesDoc.Textures {
		textureIndex[name] = i
	}

	container := &jpa.Container{}
	texturesDir := filepath.Join(inputDir, "Textures")
	for _, name := range particlesDoc.Textures {
		data, err := os.ReadFile(filepath.Join(texturesDir, name+".bti"))
		if err != nil {
			return err
		}
		if _, err := bti.Read(data); err != nil {
			return err
		}
		container.Textures = append(container.Textures, &jpa.Texture{Name: name, Data: data})
	}

	particlesDir := filepath.Join(inputDir, "Particles")
	for i, name := range particlesDoc.Particles {
		data, err := os.ReadFile(filepath.Join(particlesDir, name+".json"))
		if err != nil {
			return err
		}
		doc, err := gapadoc.UnmarshalParticle(data)
		if err != nil {
			return err
		}
		if err := gapadoc.ValidateParticleTextures(doc, particlesDoc.Textures); err != nil {
			return err
		}
		res, err := gapadoc.ParticleToResource(doc, textureIndex)
		if err != nil {
			return err
		}
		res.Index = uint16(i)
		container.Resources = append(container.Resources, res)
	}

	jpcData, err := jpa.Write(container)
	if err != nil {
		return err
	}
	namesData, err := encodeParticleNames(particlesDoc.Particles)
	if err != nil {
		return err
	}
	effectsData, err := encodeEffects(effectRows)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "Particles.jpc"), jpcData, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "ParticleNames.bcsv"), namesData, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "AutoEffectList.bcsv"), effectsData, 0o644); err != nil {
		return err
	}
	return nil
}
