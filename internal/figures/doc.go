// Package figures renders experiment results to PNG files with
// gonum/plot: convergence curves, phase portraits, spectra, bands and
// Monte Carlo histograms.
package figures
