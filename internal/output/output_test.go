// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "scatter", "category": "advanced"},
		{"name": "bar-chart", "category": "basic"},
		{"name": "line-chart", "category": "basic"},
	}
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{
			name: "empty spec",
			spec: "",
			want: nil,
		},
		{
			name: "equality",
			spec: "category=basic",
			want: []Filter{{Key: "category", Operand: "=", Target: "basic"}},
		},
		{
			name: "negated regex",
			spec: "category!/basic",
			want: []Filter{{Key: "category", Negate: true, Operand: "/", Target: "basic"}},
		},
		{
			name: "multiple",
			spec: "category=basic,name^bar",
			want: []Filter{
				{Key: "category", Operand: "=", Target: "basic"},
				{Key: "name", Operand: "^", Target: "bar"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantNames []string
	}{
		{
			name:      "no spec keeps everything",
			spec:      "",
			wantNames: []string{"scatter", "bar-chart", "line-chart"},
		},
		{
			name:      "equality",
			spec:      "category=basic",
			wantNames: []string{"bar-chart", "line-chart"},
		},
		{
			name:      "negated regex",
			spec:      "category!/basic",
			wantNames: []string{"scatter"},
		},
		{
			name:      "prefix",
			spec:      "name^line",
			wantNames: []string{"line-chart"},
		},
		{
			name:      "contains",
			spec:      "name@chart",
			wantNames: []string{"bar-chart", "line-chart"},
		},
		{
			name:      "regex",
			spec:      "name/^(bar|line)",
			wantNames: []string{"bar-chart", "line-chart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRows(testRows(), tt.spec)
			var names []string
			for _, row := range got {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestSortRows(t *testing.T) {
	rows := testRows()
	SortRows(rows, "name")
	assert.Equal(t, "bar-chart", rows[0]["name"])
	assert.Equal(t, "line-chart", rows[1]["name"])
	assert.Equal(t, "scatter", rows[2]["name"])

	SortRows(rows, "-name")
	assert.Equal(t, "scatter", rows[0]["name"])

	// Stable multi-key sort.
	rows = testRows()
	SortRows(rows, "category,name")
	assert.Equal(t, "scatter", rows[0]["name"])
	assert.Equal(t, "bar-chart", rows[1]["name"])
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float64", value: 42.5, want: "42"},
		{name: "bool true", value: true, want: "true"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value int", value: 0, want: ""},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
