package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateQuery(t *testing.T) {
	attrs := map[string]string{
		"Join_Count": "1",
		"FULLADDR":   "100 Elm St",
		"ADDRNUM":    "100",
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr string
	}{
		{name: "join count match", expr: "Join_Count = 1", want: true},
		{name: "join count no match", expr: "Join_Count = 0", want: false},
		{name: "not equal", expr: "Join_Count <> 0", want: true},
		{name: "degenerate all rows", expr: "1=1", want: true},
		{name: "empty selects everything", expr: "", want: true},
		{name: "numeric greater", expr: "ADDRNUM > 50", want: true},
		{name: "numeric less or equal", expr: "ADDRNUM <= 100", want: true},
		{name: "numeric less", expr: "ADDRNUM < 100", want: false},
		{name: "string literal equality", expr: "FULLADDR = '100 Elm St'", want: true},
		{name: "string literal mismatch", expr: "FULLADDR = '200 Oak Ave'", want: false},
		{name: "no whitespace", expr: "Join_Count=1", want: true},
		{name: "unknown field", expr: "Shape_Area > 10", wantErr: "unknown field"},
		{name: "no operator", expr: "Join_Count", wantErr: "unsupported query"},
		{name: "empty operand", expr: "= 1", wantErr: "empty query operand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateQuery(tt.expr, attrs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateQueryNumericVsStringComparison(t *testing.T) {
	// "10" sorts before "9" as a string; numeric comparison must win when
	// both sides are numbers.
	got, err := EvaluateQuery("ADDRNUM > 9", map[string]string{"ADDRNUM": "10"})
	require.NoError(t, err)
	assert.True(t, got)
}
