// Package scene defines the inputs a render consumes: a
// Camera that turns a pixel sample into a Ray, an ordered set of Lights
// each offering next-event-estimation sampling, and a root Accelerator
// (typically a *primarray.Array) the integrator traces rays against.
//
// Camera and Light are interfaces rather than concrete types so the
// integrator never depends on a specific camera or light model;
// PinholeCamera and PointLight are this package's reference
// implementations, sufficient to drive a full render end to end.
package scene
