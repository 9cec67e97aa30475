package ai

import "github.com/Faultbox/oni-patrol/pkg/math"

// DefaultRound is the fixed loop a Round enemy walks.
var DefaultRound = []math.Vec3{
	{X: 110, Y: 0, Z: 80},
	{X: 100, Y: 0, Z: 75},
	{X: 90, Y: 0, Z: 80},
	{X: 100, Y: 0, Z: 85},
}

// Route is a waypoint list with a cursor.
type Route struct {
	points []math.Vec3
	index  int
}

// Set replaces the waypoints and rewinds the cursor.
func (r *Route) Set(points []math.Vec3) {
	r.points = append(r.points[:0], points...)
	r.index = 0
}

// Clear drops all waypoints.
func (r *Route) Clear() {
	r.points = r.points[:0]
	r.index = 0
}

// Current returns the waypoint under the cursor.
func (r *Route) Current() (math.Vec3, bool) {
	if r.index >= len(r.points) {
		return math.Vec3{}, false
	}
	return r.points[r.index], true
}

// Advance moves the cursor to the next waypoint. It never passes Len.
func (r *Route) Advance() {
	if r.index < len(r.points) {
		r.index++
	}
}

// Rewind puts the cursor back on the first waypoint.
func (r *Route) Rewind() {
	r.index = 0
}

// Done reports whether every waypoint has been reached.
func (r *Route) Done() bool {
	return r.index >= len(r.points)
}

// IsLast reports whether the cursor is on the final waypoint.
func (r *Route) IsLast() bool {
	return len(r.points) > 0 && r.index == len(r.points)-1
}

// Index returns the cursor position.
func (r *Route) Index() int {
	return r.index
}

// Len returns the number of waypoints.
func (r *Route) Len() int {
	return len(r.points)
}

// Points returns the waypoints.
func (r *Route) Points() []math.Vec3 {
	return r.points
}
