// Package rerr collects the sentinel errors shared across rend's packages,
// so callers can match failure modes with errors.Is instead of string
// comparison.
package rerr

import "errors"

var (
	// ErrSingularMatrix is returned when a Transform's composed matrix
	// has no inverse (zero determinant).
	ErrSingularMatrix = errors.New("rend: matrix has no inverse")

	// ErrDegenerateVup is returned when a camera's up vector is parallel
	// to its view direction, so no orthonormal basis can be built.
	ErrDegenerateVup = errors.New("rend: camera up vector parallel to view direction")

	// ErrDuplicateSlot is returned when a shader is configured with two
	// values for the same named sub-shader slot (e.g. two "diffuse"
	// children on a Phong shader).
	ErrDuplicateSlot = errors.New("rend: duplicate shader slot")

	// ErrZeroChildCSG is returned when a CSG node (union/intersection/
	// difference) is built or initialized with fewer than two children.
	ErrZeroChildCSG = errors.New("rend: CSG operation requires at least two children")

	// ErrUnknownKeyword is returned by the scene parser/keyword registry
	// when a scene file references a keyword with no registered builder.
	ErrUnknownKeyword = errors.New("rend: unknown keyword")

	// ErrCircularInclude is returned when a scene file's (include ...)
	// directives form a cycle.
	ErrCircularInclude = errors.New("rend: circular include")

	// ErrNoShader is returned when a primitive reaches scene init with
	// no shader assigned and no default object shader configured.
	ErrNoShader = errors.New("rend: primitive has no shader")

	// ErrNoChildren is returned when a composite shader (pattern family,
	// map family) is initialized with no sub-shaders assigned.
	ErrNoChildren = errors.New("rend: shader requires at least one child")

	// ErrBadParameter is returned when a primitive is initialized with a
	// parameter outside its valid range (e.g. a torus tube radius below
	// epsilon, or a prism with fewer than 3 sides).
	ErrBadParameter = errors.New("rend: invalid primitive parameter")
)
