package jpa

// VolumeType selects a DynamicsBlock's emission volume shape.
type VolumeType uint8

const (
	VolumeCube VolumeType = iota
	VolumeSphere
	VolumeCylinder
	VolumeTorus
	VolumePoint
	VolumeCircle
	VolumeLine
)

// FieldType selects a FieldBlock's force kind.
type FieldType uint8

const (
	FieldGravity FieldType = iota
	FieldAir
	FieldMagnet
	FieldNewton
	FieldVortex
	FieldRandom
	FieldDrag
	FieldConvection
	FieldSpin
)

// FieldAddType selects how a FieldBlock's force is applied.
type FieldAddType uint8

const (
	FieldAddAccel FieldAddType = iota
	FieldAddBaseVelocity
	FieldAddFieldVelocity
)

// KeyType selects which particle parameter a KeyBlock animates.
type KeyType uint8

const (
	KeyRate KeyType = iota
	KeyVolumeSize
	KeyVolumeSweep
	KeyVolumeMinRadius
	KeyLifetime
	KeyMoment
	KeyInitVeloOmni
	KeyInitVeloAxis
	KeyInitVeloDirection
	KeySpread
	KeyScale
)

// ShapeType selects a BaseShape's particle billboard/stripe/line geometry.
type ShapeType uint8

const (
	ShapePoint ShapeType = iota
	ShapeLine
	ShapeBillboard
	ShapeDirection
	ShapeDirectionCross
	ShapeStripe
	ShapeStripeCross
	ShapeRotation
	ShapeRotationCross
	ShapeDirectionBillboard
	ShapeYBillboard
)

// DirectionType selects how a BaseShape orients its direction-dependent
// geometry.
type DirectionType uint8

const (
	DirectionVelocity DirectionType = iota
	DirectionPosition
	DirectionPositionInverse
	DirectionEmitterDirection
	DirectionPreviousParticle
	Direction5
)

// RotationType selects a BaseShape's rotation axis.
type RotationType uint8

const (
	RotationY RotationType = iota
	RotationX
	RotationZ
	RotationXYZ
	RotationYJiggle
)

// PlaneType selects a BaseShape's 2D billboard plane.
type PlaneType uint8

const (
	PlaneXY PlaneType = iota
	PlaneXZ
)

// BlendMode selects a BaseShape's GX blend mode.
type BlendMode uint8

const (
	BlendNone BlendMode = iota
	BlendBlend
	BlendLogic
)

// BlendFactor selects a GX blend source/destination factor.
type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSourceColor
	BlendFactorInverseSourceColor
	BlendFactorSourceColorExtra
	BlendFactorInverseSourceColorExtra
	BlendFactorSourceAlpha
	BlendFactorInverseSourceAlpha
	BlendFactorDestinationAlpha
	BlendFactorInverseDestinationAlpha
)

// CompareType selects a GX alpha/Z compare function.
type CompareType uint8

const (
	CompareNever CompareType = iota
	CompareLessThan
	CompareLessThanEqual
	CompareEqual
	CompareNotEqual
	CompareGreaterThanEqual
	CompareGreaterThan
	CompareAlways
)
