package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/rpatil524/autolabel/pkg/errors"
)

func TestNew(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := pkgerrors.New("config", "Load", cause)

	assert.Equal(t, "config", err.Component)
	assert.Equal(t, "Load", err.Operation)
	assert.Nil(t, err.Details)
	assert.Equal(t, cause, err.Cause)
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ContextualError
		want string
	}{
		{
			name: "cause",
			err:  pkgerrors.New("config", "Load", fmt.Errorf("file not found")),
			want: "[config] Load: file not found",
		},
		{
			name: "no cause",
			err:  pkgerrors.New("schema", "Compile", nil),
			want: "[schema] Compile",
		},
		{
			name: "path detail",
			err: pkgerrors.New("config", "Load", fmt.Errorf("bad yaml")).
				WithDetails(map[string]any{"path": "task.yaml"}),
			want: "[config] Load (task.yaml): bad yaml",
		},
		{
			name: "non-path details are not rendered",
			err: pkgerrors.New("config", "Parse", nil).
				WithDetails(map[string]any{"bytes": 12}),
			want: "[config] Parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWithDetails_Chains(t *testing.T) {
	err := pkgerrors.New("config", "Load", nil)
	details := map[string]any{"path": "a.json"}

	result := err.WithDetails(details)

	assert.Same(t, err, result)
	assert.Equal(t, details, err.Details)
}

func TestUnwrap_ErrorsIs(t *testing.T) {
	err := pkgerrors.New("config", "Load", fmt.Errorf("open: %w", fs.ErrNotExist))

	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", pkgerrors.New("config", "Load", nil))

	var ce *pkgerrors.ContextualError
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, "Load", ce.Operation)
}
