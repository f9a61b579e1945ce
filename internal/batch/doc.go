// Package batch cleans many table files concurrently.
//
// Inputs are collected from files, directories and doublestar globs,
// planned into jobs with output and report paths, then run through a
// bounded errgroup. Each table is cleaned independently with a shared
// stateless Cleaner.
package batch
