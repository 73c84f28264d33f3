// Package services wires the pipeline together.
//
// SessionManager opens the single storage session of a run. PipelineService
// drives the fixed load sequence on top of it:
//
//	read users, recipes, interactions
//	transform and decode each dataset
//	append users, then recipes, then interactions (each creates its table)
//	ensure the schema
//
// Appends are not wrapped in a transaction: when a later append fails, the
// rows of the earlier ones stay committed.
package services
