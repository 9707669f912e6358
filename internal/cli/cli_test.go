package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/store"
)

func captureOutput(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	SetOutput(out, errOut, strings.NewReader(input))
	t.Cleanup(func() {
		stdout, stderr, stdin = oldOut, oldErr, oldIn
		SetGlobalFlags(false, false, false)
	})
	return out, errOut
}

func TestParseFilterFlags(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []FilterFlag
		wantErr bool
	}{
		{
			name:  "equals and colon",
			input: []string{"category=vinyl", "public:true"},
			want:  []FilterFlag{{Key: "category", Value: "vinyl"}, {Key: "public", Value: "true"}},
		},
		{
			name:  "empty value clears",
			input: []string{"category="},
			want:  []FilterFlag{{Key: "category", Value: ""}},
		},
		{
			name:  "value may contain separators",
			input: []string{"category=a=b"},
			want:  []FilterFlag{{Key: "category", Value: "a=b"}},
		},
		{name: "missing separator", input: []string{"category"}, wantErr: true},
		{name: "missing key", input: []string{"=vinyl"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilterFlags(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeListName(t *testing.T) {
	tests := map[string]string{
		"collections": lists.Collections,
		"Collection":  lists.CollectionItems,
		"item":        lists.Items,
		"wish-list":   lists.WishList,
		"wishes":      lists.WishList,
		"explore":     lists.Explore,
	}
	for input, want := range tests {
		got, err := NormalizeListName(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := NormalizeListName("pipelines")
	assert.Error(t, err)
}

func TestNormalizeKind(t *testing.T) {
	kind, err := NormalizeKind("Items")
	require.NoError(t, err)
	assert.Equal(t, store.KindItem, kind)

	kind, err = NormalizeKind("wishlist")
	require.NoError(t, err)
	assert.Equal(t, store.KindWish, kind)

	_, err = NormalizeKind("pipeline")
	assert.Error(t, err)
}

func TestValidateKeys(t *testing.T) {
	assert.NoError(t, ValidateFilterKeys(lists.Collections, []FilterFlag{{Key: "has_items"}, {Key: "Public"}}))
	assert.Error(t, ValidateFilterKeys(lists.Collections, []FilterFlag{{Key: "favorite"}}))
	assert.NoError(t, ValidateFilterKeys(lists.Items, []FilterFlag{{Key: "in-collection"}}))

	assert.NoError(t, ValidateSortKey(lists.WishList, "priority"))
	assert.NoError(t, ValidateSortKey(lists.Items, ""))
	assert.NoError(t, ValidateSortKey(lists.CollectionItems, "custom"))
	assert.Error(t, ValidateSortKey(lists.Items, "custom"))

	assert.NoError(t, ValidateOrder("DESC"))
	assert.Error(t, ValidateOrder("up"))

	assert.NoError(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "NAME", "CATEGORY")
	table.Row("Blue Train", "vinyl")
	table.Row("Kind of Blue", "-")
	assert.Equal(t, 2, table.Len())
	table.Render()

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Blue Train")
	assert.Contains(t, out, "Kind of Blue")
	assert.Less(t, strings.Index(out, "Blue Train"), strings.Index(out, "Kind of Blue"))
}

func TestOutputResults(t *testing.T) {
	data := map[string]any{"list": "items", "count": 2}

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", data))
	assert.JSONEq(t, `{"list":"items","count":2}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", data))
	assert.Contains(t, buf.String(), "list: items")
	assert.Contains(t, buf.String(), "count: 2")

	assert.Error(t, OutputResults(&buf, "xml", data))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "Blue...", TruncateString("Blue Train", 7))
	assert.Equal(t, "Blue Train", TruncateString("Blue\n  Train", 20))
	assert.Equal(t, "Bl", TruncateString("Blue", 2))

	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "yes", FormatBool(true))
	assert.Equal(t, "-", FormatPrice(0))
	assert.Equal(t, "12.50", FormatPrice(12.5))
	assert.Equal(t, "-", FormatCategory(""))
}

func TestPrintHelpers(t *testing.T) {
	out, errOut := captureOutput(t, "")
	SetGlobalFlags(false, true, false)

	PrintSuccess("saved %s", "x")
	PrintInfo("hello")
	PrintWarning("careful")
	PrintError("broken")

	assert.Equal(t, "OK: saved x\nINFO: hello\n", out.String())
	assert.Equal(t, "WARNING: careful\nERROR: broken\n", errOut.String())

	out.Reset()
	SetGlobalFlags(true, true, false)
	PrintSuccess("hidden")
	PrintInfo("hidden")
	assert.Empty(t, out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		skip       bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "yes\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "n\n", skip: true, want: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			captureOutput(t, tt.input)
			SetGlobalFlags(false, true, tt.skip)

			got, err := Confirm("Delete?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
