package sampler

import "errors"

// Failure classes reported by extraction. Callers match with errors.Is; the
// wrapped message carries the clip/joint/property name and sample time.
var (
	// ErrNoAnimation: the scene holds zero clips.
	ErrNoAnimation = errors.New("no animation found")

	// ErrNodeNotFound: a named node lookup failed. Fatal for ad-hoc track
	// extraction; for a skeleton joint it is not an error at all, the joint
	// falls back to its bind pose.
	ErrNodeNotFound = errors.New("node not found")

	// ErrPropertyNotFound: an ad-hoc property lookup failed.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrConversion: the converter rejected a sampled transform matrix.
	// Fatal for the whole clip being extracted.
	ErrConversion = errors.New("transform conversion failed")

	// ErrUnsupportedType: the property's declared type has no decoder.
	ErrUnsupportedType = errors.New("unsupported property type")
)
