package models

import "github.com/darkhorsekelly/mesh/internal/fp"

// CelestialKind discriminates the gravitational-anchor variants.
type CelestialKind string

const (
	CelestialSol      CelestialKind = "Sol"
	CelestialPlanet   CelestialKind = "Planet"
	CelestialMoon     CelestialKind = "Moon"
	CelestialAsteroid CelestialKind = "Asteroid"
	CelestialWormhole CelestialKind = "Wormhole"
)

// Celestial is a gravitational anchor: a star, planet, moon, asteroid, or
// wormhole. Non-wormholes carry Position/Mass; wormholes carry a pair of
// endpoints and the systems they connect instead.
type Celestial struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Kind          CelestialKind `json:"kind"`
	Radius        fp.Scalar     `json:"radius"`
	CaptureRadius fp.Scalar     `json:"captureRadius"`
	Z             fp.Scalar     `json:"z"`

	// Non-wormhole fields.
	Position fp.Vec2   `json:"position,omitempty"`
	Mass     fp.Scalar `json:"mass,omitempty"`

	// Orbital parameters, for Planet/Moon.
	OrbitRadius fp.Scalar `json:"orbitRadius,omitempty"`
	OrbitAngle  fp.Scalar `json:"orbitAngle,omitempty"`
	OrbitSpeed  fp.Scalar `json:"orbitSpeed,omitempty"`
	OrbitParent *string   `json:"orbitParent,omitempty"`

	// Asteroid-only.
	Velocity fp.Vec2 `json:"velocity,omitempty"`

	// Wormhole-only.
	EndpointA *fp.Vec2 `json:"endpointA,omitempty"`
	EndpointB *fp.Vec2 `json:"endpointB,omitempty"`
	SystemA   string   `json:"systemA,omitempty"`
	SystemB   string   `json:"systemB,omitempty"`
}

// StarSystem groups celestials and entities under a shared identifier.
// The resolver itself is system-agnostic; systems are carried for
// transport/UI grouping.
type StarSystem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
