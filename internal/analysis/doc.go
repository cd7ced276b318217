// Package analysis provides post-processing for recorded runs:
// spectra of position signals, phase portraits and stroboscopic
// sections of driven motion.
package analysis
