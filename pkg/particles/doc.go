// Package particles animates a fixed set of points drifting inside a viewport
// and draws them as a network: every pair closer than a link distance is
// joined by a line that thins out with distance, and every point is drawn as a
// small glowing disk.
//
// An Animator moves through three states. It starts Uninitialized, Mount
// seeds the particle set and enters Running, and Teardown cancels the pending
// frame, drops the particles and enters TornDown. Motion uses elastic
// reflection: a velocity component flips sign once the position leaves the
// viewport on that axis, without correcting the position, so a particle can
// overshoot the edge by up to one step.
//
// Drawing goes through the Canvas interface and frame pacing through the
// Scheduler interface so hosts (a desktop window, a terminal) decide how
// pixels and refreshes happen. All tunables live in Config.
package particles
