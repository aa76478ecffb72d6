package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffenterprise, organization ,repository,app_installations,isArchived\n" +
		"acme,platform,api,3,false\n" +
		"acme,platform,legacy,,TRUE\n" +
		",,\n" +
		"acme,web,site\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.RepositoryRecord{
		"enterprise":        "acme",
		"organization":      "platform",
		"repository":        "api",
		"app_installations": "3",
		"isArchived":        "false",
	}, records[0])

	assert.Equal(t, "acme", records[1].Enterprise())
	assert.True(t, records[1].Bool(models.FieldArchived))
	assert.Equal(t, 0, records[1].Int(models.FieldAppInstallations))

	// Short row padded
	assert.Equal(t, "site", records[2].Repository())
	v, ok := records[2].Get(models.FieldArchived)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty input", "", "missing header row"},
		{"empty header cell", "repository,,secrets\n", "header column 2 is empty"},
		{"duplicate header", "repository,secrets,secrets\n", `duplicate header column "secrets"`},
		{"too many values", "repository,secrets\napi,1,2\n", "line 2: 3 values for 2 columns"},
		{"bad quoting", "repository,secrets\n\"api,1\n", "failed to read row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("repository,secrets\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.csv")
	require.NoError(t, os.WriteFile(path, []byte("repository,secrets\napi,4\n"), 0o600))

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Int(models.FieldSecrets))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
