// SPDX-License-Identifier: MIT
package surf

import "github.com/katalvlaran/ccgsurf/alloc"

// Option customizes a SubSurf's configuration by mutating a Config
// instance before construction begins: NewSubSurf starts from the
// defaults, applies each Option in order (later options win), and
// validates the result once at the end.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(cfg *Config)

// Config holds every enumerated configuration knob a SubSurf is built
// with. Callers normally assemble one through Options passed to
// NewSubSurf; the type stays exported so a built instance's settings can
// be read back through (*SubSurf).Config.
type Config struct {
	// SubdivLevels is the finest subdivision level L, in [1, 11].
	SubdivLevels int

	// NumLayers is the number of float64 layers per vertex element; layers
	// 0..2 are conventionally XYZ position.
	NumLayers int

	// VertUserSize, EdgeUserSize, FaceUserSize are the opaque per-entity
	// user-data region sizes, in bytes.
	VertUserSize int
	EdgeUserSize int
	FaceUserSize int

	// SimpleSubdiv makes the vertex-update rule the identity: nCo = co,
	// skipping the Catmull-Clark vertex shift entirely.
	SimpleSubdiv bool

	// CalcVertNormals enables the normals pass. NormalDataOffset is
	// recorded as given; the normals pass does not write into elements at
	// that offset but keeps its results in a separate store read through
	// VertNormal, EdgeNormal, and GridNormal.
	CalcVertNormals  bool
	NormalDataOffset int

	// AllocMask and MaskDataOffset are recorded as given and reported by
	// AllocMask(). No slot is reserved: an element stays NumLayers floats
	// long, and this package neither reads nor writes mask values.
	AllocMask      bool
	MaskDataOffset int

	// UseAgeCounts enables a 4-byte age counter written at sync completion
	// at the given byte offset within each entity's user-data region.
	UseAgeCounts      bool
	VertUserAgeOffset int
	EdgeUserAgeOffset int
	FaceUserAgeOffset int

	// AllowEdgeCreation permits the face-sync step to synthesize a missing
	// edge (handle -1, DefaultCreaseValue, DefaultEdgeUserData) instead of
	// failing the sync with ErrInvalidValue.
	AllowEdgeCreation   bool
	DefaultCreaseValue  float64
	DefaultEdgeUserData []byte

	// Allocator backs every entity's user-data byte region. Defaults to
	// alloc.NewHeap() when left nil.
	Allocator alloc.Allocator
}

// defaultConfig returns the baseline every NewSubSurf call starts from
// before applying Options.
// Complexity: O(1) time, O(1) space.
func defaultConfig() Config {
	return Config{
		SubdivLevels: 1,
		NumLayers:    3,
		Allocator:    alloc.NewHeap(),
	}
}

// WithSubdivLevels sets the finest subdivision level.
// Complexity: O(1) time, O(1) space.
func WithSubdivLevels(l int) Option {
	return func(cfg *Config) { cfg.SubdivLevels = l }
}

// WithNumLayers sets the float64 layer count per element.
// Complexity: O(1) time, O(1) space.
func WithNumLayers(n int) Option {
	return func(cfg *Config) { cfg.NumLayers = n }
}

// WithUserDataSizes sets the per-entity opaque user-data region sizes.
// Complexity: O(1) time, O(1) space.
func WithUserDataSizes(vert, edge, face int) Option {
	return func(cfg *Config) {
		cfg.VertUserSize = vert
		cfg.EdgeUserSize = edge
		cfg.FaceUserSize = face
	}
}

// WithSimpleSubdiv toggles the identity vertex-update rule.
// Complexity: O(1) time, O(1) space.
func WithSimpleSubdiv(simple bool) Option {
	return func(cfg *Config) { cfg.SimpleSubdiv = simple }
}

// WithVertNormals enables the normals pass and fixes its element slot
// offset.
// Complexity: O(1) time, O(1) space.
func WithVertNormals(offset int) Option {
	return func(cfg *Config) {
		cfg.CalcVertNormals = true
		cfg.NormalDataOffset = offset
	}
}

// WithMask reserves a per-element mask float at offset.
// Complexity: O(1) time, O(1) space.
func WithMask(offset int) Option {
	return func(cfg *Config) {
		cfg.AllocMask = true
		cfg.MaskDataOffset = offset
	}
}

// WithAgeCounts enables the age-counter write path at sync completion.
// Complexity: O(1) time, O(1) space.
func WithAgeCounts(vertOffset, edgeOffset, faceOffset int) Option {
	return func(cfg *Config) {
		cfg.UseAgeCounts = true
		cfg.VertUserAgeOffset = vertOffset
		cfg.EdgeUserAgeOffset = edgeOffset
		cfg.FaceUserAgeOffset = faceOffset
	}
}

// WithEdgeCreation enables synthetic-edge creation during face sync.
// Complexity: O(1) time, O(1) space.
func WithEdgeCreation(defaultCrease float64, defaultUserData []byte) Option {
	return func(cfg *Config) {
		cfg.AllowEdgeCreation = true
		cfg.DefaultCreaseValue = defaultCrease
		cfg.DefaultEdgeUserData = defaultUserData
	}
}

// WithAllocator overrides the default heap allocator.
// Complexity: O(1) time, O(1) space.
func WithAllocator(a alloc.Allocator) Option {
	return func(cfg *Config) { cfg.Allocator = a }
}

// validate checks the fully-assembled Config's constraints, returning
// ErrBadLevel for an out-of-range SubdivLevels and ErrInvalidValue for a
// NumLayers below 1. Called once by NewSubSurf and again by
// SetSubdivisionLevels.
// Complexity: O(1) time, O(1) space.
func (cfg *Config) validate() error {
	if cfg.SubdivLevels < 1 || cfg.SubdivLevels > 11 {
		return ErrBadLevel
	}
	if cfg.NumLayers < 1 {
		return ErrInvalidValue
	}
	return nil
}
