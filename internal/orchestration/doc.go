// Package orchestration drives the Pisano analyzer over a range of moduli
// with a bounded worker pool, partitions the results into moduli that cover
// every residue and those that do not, and persists them through a result
// store. Presentation is reached only through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
