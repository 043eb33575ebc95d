package freecad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload ObjectPayload
		wantErr string
	}{
		{
			name:    "valid part",
			payload: ObjectPayload{Name: "Box", Type: "Part::Box"},
		},
		{
			name:    "valid draft",
			payload: ObjectPayload{Name: "Circle", Type: "Draft::Circle"},
		},
		{
			name:    "valid fem",
			payload: ObjectPayload{Name: "Analysis", Type: "Fem::AnalysisPython"},
		},
		{
			name:    "missing name",
			payload: ObjectPayload{Type: "Part::Box"},
			wantErr: "Name",
		},
		{
			name:    "missing type",
			payload: ObjectPayload{Name: "Box"},
			wantErr: "Type",
		},
		{
			name:    "unknown namespace",
			payload: ObjectPayload{Name: "Box", Type: "Mesh::Box"},
			wantErr: "must start with",
		},
		{
			name:    "prefix must match exactly",
			payload: ObjectPayload{Name: "Box", Type: "part::Box"},
			wantErr: "must start with",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(&tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidatePayload_DefaultsProperties(t *testing.T) {
	p := ObjectPayload{Name: "Box", Type: "Part::Box"}
	require.NoError(t, ValidatePayload(&p))
	assert.NotNil(t, p.Properties, "Properties must default to an empty map")
}
