// Package experiment wires the numerical studies into a common
// interface: each experiment runs from a config, produces data tables
// for the run store and renders its figures.
package experiment
