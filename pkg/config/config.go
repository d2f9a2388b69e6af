// Package config resolves labeling task configurations.
//
// This package loads a nested configuration document (JSON or YAML), validates
// it once against the task schema, and exposes typed, defaulted accessors for:
//   - Task identity (task_name, task_type)
//   - Dataset columns and CSV dialect
//   - Labeling model and embedding model selection
//   - Prompt construction: guidelines, labels, few-shot examples, attributes
//   - Synthetic dataset generation and confidence chunking
//
// The package is organized into:
//   - document.go: order-preserving document tree and parsing
//   - loader.go: constructors (New, FromMap, Load) and options
//   - autolabel.go: section views and accessors
//   - labels.go / attribute.go: derived views over the prompt section
//   - types.go: schema types reflected into JSON Schema
//   - schema_validator.go: JSON Schema validation collaborator
//   - manifest.go: K8s-style manifest envelope
//   - validator.go: non-fatal configuration warnings
package config
