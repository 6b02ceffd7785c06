// Package automation scripts batches of headless flights: YAML
// scenario sequences, single-key gain sweeps and randomized spawn
// perturbation trials. Everything here drives the same deterministic
// bench the interactive tools use.
package automation
