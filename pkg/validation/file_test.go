package validation

import (
	"bytes"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zipHeader = []byte("PK\x03\x04\x14\x00\x06\x00")

func TestValidateWorkbook(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		content []byte
		wantErr string
	}{
		{name: "valid", file: "inventory.xlsx", size: 8, content: zipHeader},
		{name: "upper case extension", file: "Inventory.XLSX", size: 8, content: zipHeader},
		{name: "csv", file: "inventory.csv", size: 3, content: []byte("a,b"), wantErr: "only .xlsx files are supported"},
		{name: "too large", file: "big.xlsx", size: MaxWorkbookSize + 1, content: zipHeader, wantErr: "exceeds the 10 MB limit"},
		{name: "renamed text", file: "fake.xlsx", size: 5, content: []byte("hello"), wantErr: "not an .xlsx workbook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.content)
			err := ValidateWorkbook(&multipart.FileHeader{Filename: tt.file, Size: tt.size}, r)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.content, rest)
		})
	}
}
