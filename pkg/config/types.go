package config

import (
	"github.com/invopop/jsonschema"
)

// The types in this file describe the task document for schema generation.
// Accessors read the Document directly so that documents loaded without
// validation still resolve.

// TaskSpec is the top-level labeling task document.
type TaskSpec struct {
	TaskName          string                    `json:"task_name" jsonschema:"title=Task Name,description=Human readable name of the labeling task,minLength=1"`
	TaskType          string                    `json:"task_type" jsonschema:"title=Task Type,enum=classification,enum=named_entity_recognition,enum=question_answering,enum=entity_matching,enum=multilabel_classification,enum=attribute_extraction"`
	Dataset           *DatasetSection           `json:"dataset,omitempty" jsonschema:"title=Dataset"`
	Model             ModelSection              `json:"model" jsonschema:"title=Model"`
	Embedding         *EmbeddingSection         `json:"embedding,omitempty" jsonschema:"title=Embedding"`
	Prompt            PromptSection             `json:"prompt" jsonschema:"title=Prompt"`
	DatasetGeneration *DatasetGenerationSection `json:"dataset_generation,omitempty" jsonschema:"title=Dataset Generation"`
	Chunking          *ChunkingSection          `json:"chunking,omitempty" jsonschema:"title=Chunking"`
	Transforms        []TransformSpec           `json:"transforms,omitempty" jsonschema:"title=Transforms"`
}

// DatasetSection describes the dataset being labeled.
type DatasetSection struct {
	LabelColumn       string   `json:"label_column,omitempty" jsonschema:"nullable,description=Column holding ground truth labels"`
	LabelSeparator    string   `json:"label_separator,omitempty" jsonschema:"description=Separator between multiple labels,default=;"`
	ExplanationColumn string   `json:"explanation_column,omitempty" jsonschema:"nullable"`
	ImageColumns      []string `json:"image_columns,omitempty"`
	TextColumn        string   `json:"text_column,omitempty" jsonschema:"nullable"`
	InputColumns      []string `json:"input_columns,omitempty"`
	OutputColumns     []string `json:"output_columns,omitempty"`
	Delimiter         string   `json:"delimiter,omitempty" jsonschema:"description=CSV cell delimiter"`
	DisableQuoting    bool     `json:"disable_quoting,omitempty"`
}

// ModelSection selects the labeling model.
type ModelSection struct {
	Provider          string         `json:"provider" jsonschema:"enum=openai,enum=anthropic,enum=huggingface_pipeline,enum=refuel,enum=google,enum=cohere,enum=mistral,enum=vllm,enum=custom"`
	Name              string         `json:"name" jsonschema:"minLength=1,description=Model name such as gpt-4"`
	Params            map[string]any `json:"params,omitempty" jsonschema:"description=Provider specific model parameters"`
	MaxContextLength  int            `json:"max_context_length,omitempty" jsonschema:"minimum=1"`
	Endpoint          string         `json:"endpoint,omitempty" jsonschema:"nullable"`
	ComputeConfidence bool           `json:"compute_confidence,omitempty"`
}

// EmbeddingSection selects the embedding model used for example retrieval.
type EmbeddingSection struct {
	Provider string `json:"provider,omitempty" jsonschema:"enum=openai,enum=huggingface_pipeline,enum=google,enum=cohere,enum=mistral,enum=vllm,enum=custom,description=Defaults to the model provider"`
	Model    string `json:"model,omitempty" jsonschema:"nullable"`
}

// PromptSection configures prompt construction.
type PromptSection struct {
	TaskGuidelines    string          `json:"task_guidelines,omitempty"`
	OutputGuidelines  string          `json:"output_guidelines,omitempty" jsonschema:"nullable"`
	OutputFormat      string          `json:"output_format,omitempty" jsonschema:"nullable"`
	Labels            Labels          `json:"labels,omitempty"`
	FewShotExamples   ExampleSet      `json:"few_shot_examples,omitempty"`
	FewShotSelection  string          `json:"few_shot_selection,omitempty" jsonschema:"enum=fixed,enum=semantic_similarity,enum=max_marginal_relevance,enum=label_diversity_random,enum=label_diversity_similarity"`
	FewShotNum        int             `json:"few_shot_num,omitempty" jsonschema:"minimum=0"`
	VectorStoreParams map[string]any  `json:"vector_store_params,omitempty"`
	ExampleTemplate   string          `json:"example_template,omitempty" jsonschema:"description=Template for one example with {column} placeholders"`
	ChainOfThought    bool            `json:"chain_of_thought,omitempty"`
	Attributes        []AttributeSpec `json:"attributes,omitempty"`
}

// AttributeSpec is one attribute to extract or label.
type AttributeSpec struct {
	Name                string             `json:"name" jsonschema:"minLength=1"`
	Description         string             `json:"description,omitempty"`
	Options             []string           `json:"options,omitempty"`
	TaskType            string             `json:"task_type,omitempty"`
	LabelSelection      labelSelectionFlag `json:"label_selection,omitempty"`
	LabelSelectionCount int                `json:"label_selection_count,omitempty" jsonschema:"minimum=1"`
}

// DatasetGenerationSection configures synthetic dataset generation.
type DatasetGenerationSection struct {
	Guidelines string `json:"guidelines,omitempty"`
	NumRows    int    `json:"num_rows,omitempty" jsonschema:"minimum=1"`
}

// ChunkingSection configures confidence chunking for long inputs.
type ChunkingSection struct {
	ConfidenceChunkColumn   string `json:"confidence_chunk_column,omitempty" jsonschema:"nullable"`
	ConfidenceChunkSize     int    `json:"confidence_chunk_size,omitempty" jsonschema:"minimum=1"`
	ConfidenceMergeFunction string `json:"confidence_merge_function,omitempty" jsonschema:"enum=max,enum=min,enum=mean"`
}

// TransformSpec is a preprocessing transform applied before labeling.
type TransformSpec struct {
	Name          string         `json:"name" jsonschema:"minLength=1"`
	Params        map[string]any `json:"params,omitempty"`
	OutputColumns map[string]any `json:"output_columns,omitempty"`
}

// newReflector creates the reflector used for the task schema.
func newReflector() jsonschema.Reflector {
	return jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
		FieldNameTag:               "json",
		RequiredFromJSONSchemaTags: false,
	}
}

// GenerateSchema reflects TaskSpec into a draft-07 JSON Schema.
func GenerateSchema() *jsonschema.Schema {
	reflector := newReflector()

	s := reflector.Reflect(&TaskSpec{})

	s.Version = "http://json-schema.org/draft-07/schema#"
	s.Title = "Autolabel Task Configuration (" + SchemaVersion + ")"
	s.Description = "Configuration for a labeling task: dataset, model, prompt and chunking settings"

	allowSchemaField(s)

	return s
}

// allowSchemaField adds the optional $schema property so documents can
// reference the schema URL.
func allowSchemaField(s *jsonschema.Schema) {
	if s.Properties == nil {
		return
	}

	s.Properties.Set("$schema", &jsonschema.Schema{
		Type:        "string",
		Description: "JSON Schema reference URL",
	})
}
