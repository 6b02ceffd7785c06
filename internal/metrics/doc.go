// Package metrics holds the per-run scalar observers the runner feeds
// every tick: tracking error, control effort, motor saturation and
// thrust chattering. Each satisfies the runner's Metric interface.
package metrics
