package gapadoc

import (
	"encoding/json"
	"testing"

	"github.com/AwesomeTMC/gapac/bcsv"
	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/AwesomeTMC/gapac/jpa"
	"github.com/iancoleman/orderedmap"
	. "github.com/smartystreets/goconvey/convey"
)

func parseOrderedKeys(data []byte) ([]string, error) {
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, err
	}
	return om.Keys(), nil
}

func minimalRow() bcsv.Row {
	row := bcsv.Row{}
	for _, spec := range Schema {
		row[spec.JSON] = spec.Default
	}
	row["GroupName"] = bcsv.String("Kuribo")
	row["UniqueName"] = bcsv.String("X")
	row["EffectName"] = bcsv.String("Smoke")
	return row
}

func TestEffectDefaultStripping(t *testing.T) {
	Convey("an all-defaults-but-required row strips down to exactly the required keys", t, func() {
		data, err := EffectToJSON(minimalRow())
		So(err, ShouldBeNil)

		om, err := parseOrderedKeys(data)
		So(err, ShouldBeNil)
		So(om, ShouldResemble, []string{"GroupName", "UniqueName", "EffectName"})
	})

	Convey("strip then inject reproduces the original row", t, func() {
		row := minimalRow()
		row["ScaleValue"] = bcsv.Float(2.0)
		row["Affect"] = bcsv.String("R/T")

		data, err := EffectToJSON(row)
		So(err, ShouldBeNil)

		back, err := EffectFromJSON(data)
		So(err, ShouldBeNil)
		So(back["ScaleValue"].F32, ShouldEqual, float32(2.0))
		So(back["Affect"].Str, ShouldEqual, "T/R")
		So(back["GroupName"].Str, ShouldEqual, "Kuribo")
	})

	Convey("a required column missing from the row fails with DanglingReference", t, func() {
		row := minimalRow()
		delete(row, "UniqueName")
		_, err := EffectToJSON(row)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
	})

	Convey("comma and space arrays encode distinctly", t, func() {
		row := minimalRow()
		row["AnimName"] = bcsv.String("Walk,Run")
		row["EffectName"] = bcsv.String("Smoke Fire")

		data, err := EffectToJSON(row)
		So(err, ShouldBeNil)
		back, err := EffectFromJSON(data)
		So(err, ShouldBeNil)
		So(back["AnimName"].Str, ShouldEqual, "Walk,Run")
		So(back["EffectName"].Str, ShouldEqual, "Smoke Fire")
	})
}

func TestDrawOrderRoundTrip(t *testing.T) {
	Convey("every DrawOrder name maps to its stated ordinal and back", t, func() {
		names := []string{"3D", "PAUSE_IGNORE", "INDIRECT", "AFTER_INDIRECT", "BLOOM_EFFECT",
			"AFTER_IMAGE_EFFECT", "2D", "2D_PAUSE_IGNORE", "FOR_2D_MODEL"}
		for i, name := range names {
			ord, ok := DrawOrderOrdinal(name)
			So(ok, ShouldBeTrue)
			So(ord, ShouldEqual, i)

			back, ok := DrawOrderFromOrdinal(ord)
			So(ok, ShouldBeTrue)
			So(back, ShouldEqual, name)
		}
	})
}

func TestTRSParsing(t *testing.T) {
	Convey("T/R parses to {T,R} and renders back in canonical order", t, func() {
		trs := ParseTRS("T/R")
		So(trs, ShouldResemble, TRS{T: true, R: true})
		So(trs.String(), ShouldEqual, "T/R")
	})

	Convey("S/T/R is accepted on read and normalized to T/R/S on write", t, func() {
		trs := ParseTRS("S/T/R")
		So(trs.String(), ShouldEqual, "T/R/S")
	})

	Convey("empty string parses to the zero value", t, func() {
		So(ParseTRS("").IsZero(), ShouldBeTrue)
	})
}

func TestColorParsing(t *testing.T) {
	Convey("a 6-digit hex color parses case-insensitively", t, func() {
		c, err := ParseColor("#FF8800")
		So(err, ShouldBeNil)
		So(c.R, ShouldEqual, uint8(0xFF))
		So(c.HasAlpha, ShouldBeFalse)
		So(c.String(), ShouldEqual, "#ff8800")
	})

	Convey("an 8-digit hex color carries alpha", t, func() {
		c, err := ParseColor("#11223344")
		So(err, ShouldBeNil)
		So(c.HasAlpha, ShouldBeTrue)
		So(c.A, ShouldEqual, uint8(0x44))
	})

	Convey("a malformed color fails with ValueOutOfRange", t, func() {
		_, err := ParseColor("orange")
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.ValueOutOfRange), ShouldBeTrue)
	})
}

func sampleResource() *jpa.Resource {
	return &jpa.Resource{
		Dynamics:       &jpa.DynamicsBlock{},
		BaseShape:      &jpa.BaseShape{},
		ExtraShape:     &jpa.ExtraShape{},
		TextureIndices: []int16{0},
	}
}

func TestParticleTextureResolution(t *testing.T) {
	Convey("a resource's texture indices resolve to names in the container's pool", t, func() {
		doc, err := ParticleFromResource(sampleResource(), []string{"mr_glow01_i"})
		So(err, ShouldBeNil)
		So(doc.Textures, ShouldResemble, []string{"mr_glow01_i"})
	})

	Convey("an out-of-range texture index fails with DanglingReference", t, func() {
		res := sampleResource()
		res.TextureIndices = []int16{5}
		_, err := ParticleFromResource(res, []string{"only_one"})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
	})

	Convey("round trip through a particle document preserves texture names", t, func() {
		doc, err := ParticleFromResource(sampleResource(), []string{"mr_glow01_i"})
		So(err, ShouldBeNil)

		data, err := MarshalParticle(doc)
		So(err, ShouldBeNil)

		back, err := UnmarshalParticle(data)
		So(err, ShouldBeNil)
		So(back.Textures, ShouldResemble, []string{"mr_glow01_i"})

		res, err := ParticleToResource(back, map[string]int{"mr_glow01_i": 0})
		So(err, ShouldBeNil)
		So(res.TextureIndices, ShouldResemble, []int16{0})
	})

	Convey("an unresolvable texture name fails with DanglingReference on pack", t, func() {
		doc := &ParticleDoc{Textures: []string{"missing"}}
		_, err := ParticleToResource(doc, map[string]int{})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
	})
}

func TestValidateEffects(t *testing.T) {
	Convey("duplicate UniqueName within the same GroupName fails with DuplicateKey", t, func() {
		a := minimalRow()
		b := minimalRow()
		err := ValidateEffects([]bcsv.Row{a, b})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DuplicateKey), ShouldBeTrue)
	})

	Convey("a ParentName resolving to a sibling UniqueName passes", t, func() {
		a := minimalRow()
		b := minimalRow()
		b["UniqueName"] = bcsv.String("Y")
		b["ParentName"] = bcsv.String("X")
		So(ValidateEffects([]bcsv.Row{a, b}), ShouldBeNil)
	})

	Convey("an unresolvable ParentName fails with DanglingReference", t, func() {
		a := minimalRow()
		a["ParentName"] = bcsv.String("Nonexistent")
		err := ValidateEffects([]bcsv.Row{a})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
	})
}

func TestValidateParticles(t *testing.T) {
	Convey("duplicate particle names fail with DuplicateKey", t, func() {
		doc := &ParticlesDoc{Particles: []string{"Test00", "Test00"}}
		err := ValidateParticles(doc)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DuplicateKey), ShouldBeTrue)
	})

	Convey("a unique particle and texture list passes", t, func() {
		doc := &ParticlesDoc{Particles: []string{"Test00"}, Textures: []string{"mr_glow01_i"}}
		So(ValidateParticles(doc), ShouldBeNil)
	})
}
