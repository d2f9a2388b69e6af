package config

import (
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// A task config may be wrapped in a K8s-style manifest:
//
//	apiVersion: autolabel.rpatil524.github.io/v1alpha1
//	kind: LabelingConfig
//	metadata:
//	  name: sentiment
//	spec:
//	  task_name: ...
//
// The spec mapping becomes the config document.

// IsManifest reports whether doc carries the manifest envelope keys.
func IsManifest(doc *Document) bool {
	_, hasVersion := doc.lookup("apiVersion")
	_, hasKind := doc.lookup("kind")
	_, hasSpec := doc.lookup("spec")
	return hasVersion && hasKind && hasSpec
}

// unwrapManifest returns doc unchanged when it is not a manifest.
func unwrapManifest(doc *Document) (*Document, metav1.ObjectMeta, error) {
	var meta metav1.ObjectMeta
	if !IsManifest(doc) {
		return doc, meta, nil
	}

	kind, _ := doc.lookup("kind")
	if kind != Kind {
		return nil, meta, &ConfigError{
			Field:   "kind",
			Message: fmt.Sprintf("expected %q", Kind),
			Value:   kind,
		}
	}

	spec, ok := doc.mapping("spec")
	if !ok {
		return nil, meta, &ConfigError{Field: "spec", Message: "must be a mapping"}
	}

	if m, ok := doc.mapping("metadata"); ok {
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, meta, fmt.Errorf("failed to encode manifest metadata: %w", err)
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, meta, &ConfigError{Field: "metadata", Message: err.Error()}
		}
	}

	return &Document{root: spec}, meta, nil
}

// Manifest wraps the resolved document in a manifest envelope.
func (c *AutolabelConfig) Manifest() *Document {
	root := newMapping()
	root.Set("apiVersion", APIVersion)
	root.Set("kind", Kind)

	metadata := newMapping()
	if c.meta.Name != "" {
		metadata.Set("name", c.meta.Name)
	}
	if c.meta.Namespace != "" {
		metadata.Set("namespace", c.meta.Namespace)
	}
	if len(c.meta.Labels) > 0 {
		metadata.Set("labels", normalize(c.meta.Labels))
	}
	if len(c.meta.Annotations) > 0 {
		metadata.Set("annotations", normalize(c.meta.Annotations))
	}
	root.Set("metadata", metadata)
	root.Set("spec", cloneMapping(c.doc.root))

	return &Document{root: root}
}
