// Package traj produces the position, feed-forward velocity and yaw
// references the controllers track.
//
// Every analytic pattern is a pure function of time, exposed through
// [Eval] so the same instant can be sampled any number of times without
// disturbing anything. Two patterns carry state instead: [Walker] walks
// a user waypoint list at constant speed, and [KeyChannel] integrates
// live keyboard axes into a floating target. [Generator] wraps all of
// them behind one facade and implements [Lookahead], the read-only view
// predictive controllers use to peek ahead of the present tick.
package traj
