package config

import (
	"encoding/json"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/rpatil524/autolabel/pkg/template"
)

// Section and key names of the task document.
const (
	sectionDataset           = "dataset"
	sectionModel             = "model"
	sectionEmbedding         = "embedding"
	sectionPrompt            = "prompt"
	sectionDatasetGeneration = "dataset_generation"
	sectionChunking          = "chunking"

	keyTaskName   = "task_name"
	keyTaskType   = "task_type"
	keyTransforms = "transforms"

	keyLabelColumn       = "label_column"
	keyLabelSeparator    = "label_separator"
	keyExplanationColumn = "explanation_column"
	keyImageColumns      = "image_columns"
	keyTextColumn        = "text_column"
	keyInputColumns      = "input_columns"
	keyOutputColumns     = "output_columns"
	keyDelimiter         = "delimiter"
	keyDisableQuoting    = "disable_quoting"

	keyProvider          = "provider"
	keyModelName         = "name"
	keyMaxContextLength  = "max_context_length"
	keyModelParams       = "params"
	keyModelEndpoint     = "endpoint"
	keyComputeConfidence = "compute_confidence"

	keyEmbeddingModel = "model"

	keyTaskGuidelines    = "task_guidelines"
	keyOutputGuidelines  = "output_guidelines"
	keyOutputFormat      = "output_format"
	keyLabels            = "labels"
	keyFewShotSelection  = "few_shot_selection"
	keyFewShotNum        = "few_shot_num"
	keyVectorStoreParams = "vector_store_params"
	keyExampleTemplate   = "example_template"
	keyChainOfThought    = "chain_of_thought"

	keyGenerationGuidelines = "guidelines"
	keyGenerationNumRows    = "num_rows"

	keyChunkColumn        = "confidence_chunk_column"
	keyChunkSize          = "confidence_chunk_size"
	keyChunkMergeFunction = "confidence_merge_function"
)

// Defaults for optional keys.
const (
	DefaultLabelSeparator          = ";"
	DefaultDelimiter               = ","
	DefaultDatasetGenerationRows   = 1
	DefaultConfidenceChunkSize     = 3400
	DefaultConfidenceMergeFunction = "max"
)

// AutolabelConfig is a resolved labeling task configuration. It is read-only
// after construction and safe for concurrent use. Accessors returning slices
// or maps return fresh copies.
type AutolabelConfig struct {
	doc       *Document
	meta      metav1.ObjectMeta
	validated bool

	sectionsOnce sync.Once
	sections     map[string]*Mapping

	derivedOnce sync.Once
	labels      Labels
	attributes  []Attribute
	selected    int
}

func (c *AutolabelConfig) section(name string) *Mapping {
	c.sectionsOnce.Do(func() {
		c.sections = make(map[string]*Mapping, 6)
		for _, s := range []string{
			sectionDataset, sectionModel, sectionEmbedding,
			sectionPrompt, sectionDatasetGeneration, sectionChunking,
		} {
			if m, ok := c.doc.mapping(s); ok {
				c.sections[s] = m
			} else {
				c.sections[s] = newMapping()
			}
		}
	})
	return c.sections[name]
}

func (c *AutolabelConfig) derive() {
	c.derivedOnce.Do(func() {
		prompt := c.section(sectionPrompt)
		v, _ := lookup(prompt, keyLabels)
		c.labels = decodeLabels(v)
		c.attributes = decodeAttributes(prompt)
		c.selected = firstLabelSelection(c.attributes)
	})
}

func requiredString(m *Mapping, section, key string) (string, error) {
	if v, ok := lookup(m, key); ok {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return "", &MissingKeyError{Section: section, Key: key}
}

// Metadata returns the manifest metadata, empty for bare documents.
func (c *AutolabelConfig) Metadata() metav1.ObjectMeta {
	return *c.meta.DeepCopy()
}

// Document returns the resolved document. Manifest envelopes are already removed.
func (c *AutolabelConfig) Document() *Document { return c.doc }

// Validated reports whether the document passed schema validation at construction.
func (c *AutolabelConfig) Validated() bool { return c.validated }

// Get returns a copy of a raw top-level value.
func (c *AutolabelConfig) Get(key string) (any, bool) { return c.doc.Get(key) }

// ToJSON encodes the resolved document with keys in document order.
func (c *AutolabelConfig) ToJSON() ([]byte, error) { return json.Marshal(c.doc) }

// String returns the JSON form of the document.
func (c *AutolabelConfig) String() string {
	data, err := c.ToJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Task

// TaskName returns task_name or a *MissingKeyError.
func (c *AutolabelConfig) TaskName() (string, error) {
	return requiredString(c.doc.root, "", keyTaskName)
}

// TaskType returns task_type or a *MissingKeyError.
func (c *AutolabelConfig) TaskType() (string, error) {
	return requiredString(c.doc.root, "", keyTaskType)
}

// Transforms returns the top-level transform entries.
func (c *AutolabelConfig) Transforms() []map[string]any {
	return mappingList(c.doc.root, keyTransforms)
}

// Dataset

// LabelColumn returns dataset.label_column, or "" when unset.
func (c *AutolabelConfig) LabelColumn() string {
	return stringOr(c.section(sectionDataset), keyLabelColumn, "")
}

// TextColumn returns dataset.text_column, or "" when unset.
func (c *AutolabelConfig) TextColumn() string {
	return stringOr(c.section(sectionDataset), keyTextColumn, "")
}

// ExplanationColumn returns dataset.explanation_column, or "" when unset.
func (c *AutolabelConfig) ExplanationColumn() string {
	return stringOr(c.section(sectionDataset), keyExplanationColumn, "")
}

// LabelSeparator returns dataset.label_separator, default DefaultLabelSeparator.
func (c *AutolabelConfig) LabelSeparator() string {
	return stringOr(c.section(sectionDataset), keyLabelSeparator, DefaultLabelSeparator)
}

// Delimiter returns dataset.delimiter, default DefaultDelimiter.
func (c *AutolabelConfig) Delimiter() string {
	return stringOr(c.section(sectionDataset), keyDelimiter, DefaultDelimiter)
}

// DisableQuoting returns dataset.disable_quoting, default false.
func (c *AutolabelConfig) DisableQuoting() bool {
	return boolOr(c.section(sectionDataset), keyDisableQuoting, false)
}

// InputColumns returns dataset.input_columns, or an empty slice.
func (c *AutolabelConfig) InputColumns() []string {
	return stringList(c.section(sectionDataset), keyInputColumns)
}

// OutputColumns returns dataset.output_columns, or an empty slice.
func (c *AutolabelConfig) OutputColumns() []string {
	return stringList(c.section(sectionDataset), keyOutputColumns)
}

// ImageColumns returns dataset.image_columns, or an empty slice.
func (c *AutolabelConfig) ImageColumns() []string {
	return stringList(c.section(sectionDataset), keyImageColumns)
}

// Model

// Provider returns model.provider or a *MissingKeyError.
func (c *AutolabelConfig) Provider() (string, error) {
	return requiredString(c.section(sectionModel), sectionModel, keyProvider)
}

// ModelName returns model.name or a *MissingKeyError.
func (c *AutolabelConfig) ModelName() (string, error) {
	return requiredString(c.section(sectionModel), sectionModel, keyModelName)
}

// ModelParams returns a copy of model.params, or an empty map.
func (c *AutolabelConfig) ModelParams() map[string]any {
	return mapOr(c.section(sectionModel), keyModelParams)
}

// MaxContextLength returns model.max_context_length, or def when it is unset.
func (c *AutolabelConfig) MaxContextLength(def int) int {
	return intOr(c.section(sectionModel), keyMaxContextLength, def)
}

// ModelEndpoint returns model.endpoint, or "" when unset.
func (c *AutolabelConfig) ModelEndpoint() string {
	return stringOr(c.section(sectionModel), keyModelEndpoint, "")
}

// Confidence reports model.compute_confidence.
func (c *AutolabelConfig) Confidence() bool {
	return boolOr(c.section(sectionModel), keyComputeConfidence, false)
}

// Embedding

// EmbeddingProvider returns embedding.provider when it is set, even to "",
// and falls back to Provider otherwise.
func (c *AutolabelConfig) EmbeddingProvider() (string, error) {
	if v, ok := lookup(c.section(sectionEmbedding), keyProvider); ok {
		if p, ok := v.(string); ok {
			return p, nil
		}
	}
	return c.Provider()
}

// EmbeddingModelName returns embedding.model, or "" when unset.
func (c *AutolabelConfig) EmbeddingModelName() string {
	return stringOr(c.section(sectionEmbedding), keyEmbeddingModel, "")
}

// Prompt

// TaskGuidelines returns prompt.task_guidelines, or "" when unset.
func (c *AutolabelConfig) TaskGuidelines() string {
	return stringOr(c.section(sectionPrompt), keyTaskGuidelines, "")
}

// OutputFormat returns prompt.output_format, or "" when unset.
func (c *AutolabelConfig) OutputFormat() string {
	return stringOr(c.section(sectionPrompt), keyOutputFormat, "")
}

// OutputGuidelines returns prompt.output_guidelines, or "" when unset.
func (c *AutolabelConfig) OutputGuidelines() string {
	return stringOr(c.section(sectionPrompt), keyOutputGuidelines, "")
}

// Labels returns the decoded label set.
func (c *AutolabelConfig) Labels() Labels {
	c.derive()
	return c.labels
}

// LabelsList returns the label names: the sequence itself for plain labels,
// the mapping's keys in document order for described labels.
func (c *AutolabelConfig) LabelsList() []string {
	return c.Labels().Names()
}

// LabelDescriptions returns the label to description mapping, or nil when
// labels are a plain sequence.
func (c *AutolabelConfig) LabelDescriptions() map[string]string {
	return c.Labels().Descriptions()
}

// FewShotExampleSet returns the configured example file path or inline rows.
func (c *AutolabelConfig) FewShotExampleSet() ExampleSet {
	return decodeExampleSet(c.section(sectionPrompt))
}

// FewShotAlgorithm returns prompt.few_shot_selection.
func (c *AutolabelConfig) FewShotAlgorithm() string {
	return stringOr(c.section(sectionPrompt), keyFewShotSelection, "")
}

// FewShotNumExamples returns prompt.few_shot_num.
func (c *AutolabelConfig) FewShotNumExamples() int {
	return intOr(c.section(sectionPrompt), keyFewShotNum, 0)
}

// VectorStoreParams returns a copy of prompt.vector_store_params, or an empty map.
func (c *AutolabelConfig) VectorStoreParams() map[string]any {
	return mapOr(c.section(sectionPrompt), keyVectorStoreParams)
}

// ExampleTemplate returns prompt.example_template. Unlike other prompt keys it
// has no default: an absent, empty or non-string template is a *ConfigError.
func (c *AutolabelConfig) ExampleTemplate() (string, error) {
	field := sectionPrompt + "." + keyExampleTemplate
	v, ok := lookup(c.section(sectionPrompt), keyExampleTemplate)
	if !ok {
		return "", &ConfigError{Field: field, Message: "an example template is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConfigError{Field: field, Message: "must be a string", Value: v}
	}
	if s == "" {
		return "", &ConfigError{Field: field, Message: "must not be empty"}
	}
	return s, nil
}

// ExampleTemplateColumns returns the column names referenced by the example
// template, in order of first use.
func (c *AutolabelConfig) ExampleTemplateColumns() ([]string, error) {
	tmpl, err := c.ExampleTemplate()
	if err != nil {
		return nil, err
	}
	return template.Placeholders(tmpl)
}

// RenderExample fills the example template with values from row.
func (c *AutolabelConfig) RenderExample(row map[string]string) (string, error) {
	tmpl, err := c.ExampleTemplate()
	if err != nil {
		return "", err
	}
	return template.NewRenderer().Render(tmpl, row)
}

// ChainOfThought returns prompt.chain_of_thought, default false.
func (c *AutolabelConfig) ChainOfThought() bool {
	return boolOr(c.section(sectionPrompt), keyChainOfThought, false)
}

// Attributes returns the prompt's attribute entries in declared order.
func (c *AutolabelConfig) Attributes() []Attribute {
	c.derive()
	out := make([]Attribute, len(c.attributes))
	for i, a := range c.attributes {
		a.Options = append([]string{}, a.Options...)
		a.LabelSelection = copyValue(a.LabelSelection)
		a.LabelSelectionCount = copyValue(a.LabelSelectionCount)
		a.Fields = plainMapping(mappingFromMap(a.Fields))
		out[i] = a
	}
	return out
}

// LabelSelection reports whether any attribute enables label selection.
func (c *AutolabelConfig) LabelSelection() bool {
	c.derive()
	return c.selected >= 0
}

// LabelSelectionAttribute returns the name of the first attribute that
// enables label selection, or "".
func (c *AutolabelConfig) LabelSelectionAttribute() string {
	c.derive()
	if c.selected < 0 {
		return ""
	}
	return c.attributes[c.selected].Name
}

// MaxSelectedLabels returns the label limit of the first attribute that
// enables label selection. ok is false when label selection is disabled.
func (c *AutolabelConfig) MaxSelectedLabels() (n int, ok bool) {
	c.derive()
	if c.selected < 0 {
		return 0, false
	}
	return c.attributes[c.selected].MaxSelectedLabels(), true
}

// Dataset generation

// DatasetGenerationGuidelines returns dataset_generation.guidelines, or "" when unset.
func (c *AutolabelConfig) DatasetGenerationGuidelines() string {
	return stringOr(c.section(sectionDatasetGeneration), keyGenerationGuidelines, "")
}

// DatasetGenerationNumRows returns dataset_generation.num_rows, default DefaultDatasetGenerationRows.
func (c *AutolabelConfig) DatasetGenerationNumRows() int {
	return intOr(c.section(sectionDatasetGeneration), keyGenerationNumRows, DefaultDatasetGenerationRows)
}

// Chunking

// ConfidenceChunkColumn returns chunking.confidence_chunk_column, or "" when unset.
func (c *AutolabelConfig) ConfidenceChunkColumn() string {
	return stringOr(c.section(sectionChunking), keyChunkColumn, "")
}

// ConfidenceChunkSize returns chunking.confidence_chunk_size, default DefaultConfidenceChunkSize.
func (c *AutolabelConfig) ConfidenceChunkSize() int {
	return intOr(c.section(sectionChunking), keyChunkSize, DefaultConfidenceChunkSize)
}

// ConfidenceMergeFunction returns chunking.confidence_merge_function, default DefaultConfidenceMergeFunction.
func (c *AutolabelConfig) ConfidenceMergeFunction() string {
	return stringOr(c.section(sectionChunking), keyChunkMergeFunction, DefaultConfidenceMergeFunction)
}
