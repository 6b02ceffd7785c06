// Package analysis inspects recorded control channels offline.
//
//   - [Spectrum]: one-sided power spectrum of a sampled channel
//   - [DominantFrequency]: strongest non-DC bin
//   - [HighFrequencyFraction]: share of power above a cutoff
//   - [TotalVariation]: accumulated |Δ| of a command channel
//   - [SettlingTime]: when a channel last left a tolerance band
//
// # Chattering
//
// Sliding-mode laws with thin boundary layers switch near the sample
// rate. Their thrust channel shows a high-frequency power fraction and
// a total variation far above the smooth controllers', which is how
// the analyze report ranks them:
//
//	freqs, power := analysis.Spectrum(thrust, 120)
//	frac := analysis.HighFrequencyFraction(freqs, power, 20)
package analysis
