package config

// Version constants for labeling configs.
const (
	// APIVersion is the Kubernetes-style API version for manifest-wrapped configs
	APIVersion = "autolabel.rpatil524.github.io/v1alpha1"

	// Kind is the manifest kind for a labeling task configuration
	Kind = "LabelingConfig"

	// SchemaVersion is the version string embedded in schema titles
	SchemaVersion = "v1alpha1"
)
