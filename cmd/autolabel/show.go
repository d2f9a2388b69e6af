package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpatil524/autolabel/pkg/config"
	"github.com/rpatil524/autolabel/pkg/logger"
)

// resolvedView is every setting of a task with defaults applied.
type resolvedView struct {
	TaskName          string           `json:"task_name" yaml:"task_name"`
	TaskType          string           `json:"task_type" yaml:"task_type"`
	Dataset           datasetView      `json:"dataset" yaml:"dataset"`
	Model             modelView        `json:"model" yaml:"model"`
	Embedding         embeddingView    `json:"embedding" yaml:"embedding"`
	Prompt            promptView       `json:"prompt" yaml:"prompt"`
	DatasetGeneration generationView   `json:"dataset_generation" yaml:"dataset_generation"`
	Chunking          chunkingView     `json:"chunking" yaml:"chunking"`
	Transforms        []map[string]any `json:"transforms" yaml:"transforms"`
}

type datasetView struct {
	LabelColumn       string   `json:"label_column,omitempty" yaml:"label_column,omitempty"`
	LabelSeparator    string   `json:"label_separator" yaml:"label_separator"`
	TextColumn        string   `json:"text_column,omitempty" yaml:"text_column,omitempty"`
	ExplanationColumn string   `json:"explanation_column,omitempty" yaml:"explanation_column,omitempty"`
	InputColumns      []string `json:"input_columns" yaml:"input_columns"`
	OutputColumns     []string `json:"output_columns" yaml:"output_columns"`
	ImageColumns      []string `json:"image_columns" yaml:"image_columns"`
	Delimiter         string   `json:"delimiter" yaml:"delimiter"`
	DisableQuoting    bool     `json:"disable_quoting" yaml:"disable_quoting"`
}

type modelView struct {
	Provider          string         `json:"provider" yaml:"provider"`
	Name              string         `json:"name" yaml:"name"`
	Params            map[string]any `json:"params" yaml:"params"`
	MaxContextLength  int            `json:"max_context_length,omitempty" yaml:"max_context_length,omitempty"`
	Endpoint          string         `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ComputeConfidence bool           `json:"compute_confidence" yaml:"compute_confidence"`
}

type embeddingView struct {
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
}

type promptView struct {
	TaskGuidelines          string            `json:"task_guidelines" yaml:"task_guidelines"`
	OutputGuidelines        string            `json:"output_guidelines,omitempty" yaml:"output_guidelines,omitempty"`
	OutputFormat            string            `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	Labels                  []string          `json:"labels" yaml:"labels"`
	LabelDescriptions       map[string]string `json:"label_descriptions,omitempty" yaml:"label_descriptions,omitempty"`
	FewShotExamples         any               `json:"few_shot_examples,omitempty" yaml:"few_shot_examples,omitempty"`
	FewShotSelection        string            `json:"few_shot_selection,omitempty" yaml:"few_shot_selection,omitempty"`
	FewShotNum              int               `json:"few_shot_num" yaml:"few_shot_num"`
	VectorStoreParams       map[string]any    `json:"vector_store_params" yaml:"vector_store_params"`
	ExampleTemplate         string            `json:"example_template,omitempty" yaml:"example_template,omitempty"`
	ChainOfThought          bool              `json:"chain_of_thought" yaml:"chain_of_thought"`
	LabelSelection          bool              `json:"label_selection" yaml:"label_selection"`
	LabelSelectionAttribute string            `json:"label_selection_attribute,omitempty" yaml:"label_selection_attribute,omitempty"`
	MaxSelectedLabels       int               `json:"max_selected_labels,omitempty" yaml:"max_selected_labels,omitempty"`
	Attributes              []string          `json:"attributes" yaml:"attributes"`
}

type generationView struct {
	Guidelines string `json:"guidelines" yaml:"guidelines"`
	NumRows    int    `json:"num_rows" yaml:"num_rows"`
}

type chunkingView struct {
	ConfidenceChunkColumn   string `json:"confidence_chunk_column,omitempty" yaml:"confidence_chunk_column,omitempty"`
	ConfidenceChunkSize     int    `json:"confidence_chunk_size" yaml:"confidence_chunk_size"`
	ConfidenceMergeFunction string `json:"confidence_merge_function" yaml:"confidence_merge_function"`
}

func newShowCmd(a *app) *cobra.Command {
	var skipSchema bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a task configuration with defaults applied",
		Long: `Prints every setting of a task configuration, including defaults for
keys the file leaves out. Secrets in model parameters are redacted.

Examples:
  autolabel show task.yaml
  autolabel show task.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(args[0], skipSchema)
			if err != nil {
				return err
			}
			view, err := buildView(cfg)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.settings.Output, view)
		},
	}

	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Skip JSON schema validation")
	return cmd
}

func buildView(cfg *config.AutolabelConfig) (*resolvedView, error) {
	taskName, err := cfg.TaskName()
	if err != nil {
		return nil, err
	}
	taskType, err := cfg.TaskType()
	if err != nil {
		return nil, err
	}
	provider, err := cfg.Provider()
	if err != nil {
		return nil, err
	}
	modelName, err := cfg.ModelName()
	if err != nil {
		return nil, err
	}
	embeddingProvider, err := cfg.EmbeddingProvider()
	if err != nil {
		return nil, err
	}

	view := &resolvedView{
		TaskName: taskName,
		TaskType: taskType,
		Dataset: datasetView{
			LabelColumn:       cfg.LabelColumn(),
			LabelSeparator:    cfg.LabelSeparator(),
			TextColumn:        cfg.TextColumn(),
			ExplanationColumn: cfg.ExplanationColumn(),
			InputColumns:      cfg.InputColumns(),
			OutputColumns:     cfg.OutputColumns(),
			ImageColumns:      cfg.ImageColumns(),
			Delimiter:         cfg.Delimiter(),
			DisableQuoting:    cfg.DisableQuoting(),
		},
		Model: modelView{
			Provider:          provider,
			Name:              modelName,
			Params:            logger.RedactParams(cfg.ModelParams()),
			MaxContextLength:  cfg.MaxContextLength(0),
			Endpoint:          cfg.ModelEndpoint(),
			ComputeConfidence: cfg.Confidence(),
		},
		Embedding: embeddingView{
			Provider: embeddingProvider,
			Model:    cfg.EmbeddingModelName(),
		},
		Prompt: promptView{
			TaskGuidelines:          cfg.TaskGuidelines(),
			OutputGuidelines:        cfg.OutputGuidelines(),
			OutputFormat:            cfg.OutputFormat(),
			Labels:                  cfg.LabelsList(),
			LabelDescriptions:       cfg.LabelDescriptions(),
			FewShotSelection:        cfg.FewShotAlgorithm(),
			FewShotNum:              cfg.FewShotNumExamples(),
			VectorStoreParams:       cfg.VectorStoreParams(),
			ChainOfThought:          cfg.ChainOfThought(),
			LabelSelection:          cfg.LabelSelection(),
			LabelSelectionAttribute: cfg.LabelSelectionAttribute(),
			Attributes:              []string{},
		},
		DatasetGeneration: generationView{
			Guidelines: cfg.DatasetGenerationGuidelines(),
			NumRows:    cfg.DatasetGenerationNumRows(),
		},
		Chunking: chunkingView{
			ConfidenceChunkColumn:   cfg.ConfidenceChunkColumn(),
			ConfidenceChunkSize:     cfg.ConfidenceChunkSize(),
			ConfidenceMergeFunction: cfg.ConfidenceMergeFunction(),
		},
		Transforms: cfg.Transforms(),
	}

	if tmpl, err := cfg.ExampleTemplate(); err == nil {
		view.Prompt.ExampleTemplate = tmpl
	}
	if n, ok := cfg.MaxSelectedLabels(); ok {
		view.Prompt.MaxSelectedLabels = n
	}
	if set := cfg.FewShotExampleSet(); set.Path != "" {
		view.Prompt.FewShotExamples = set.Path
	} else if len(set.Rows) > 0 {
		view.Prompt.FewShotExamples = set.Rows
	}
	for _, attr := range cfg.Attributes() {
		view.Prompt.Attributes = append(view.Prompt.Attributes, attr.Name)
	}

	return view, nil
}

func writeOutput(out io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}
