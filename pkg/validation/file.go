package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	WorkbookExtension = ".xlsx"
	MaxWorkbookSize   = 10 << 20

	// An .xlsx file is a zip archive.
	workbookMimeType = "application/zip"
)

// ValidateWorkbook checks extension, size and magic bytes of an uploaded
// workbook. The read cursor of file is returned to the start.
func ValidateWorkbook(fileHeader *multipart.FileHeader, file io.ReadSeeker) error {
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), WorkbookExtension) {
		return fmt.Errorf("only %s files are supported", WorkbookExtension)
	}
	if fileHeader.Size > MaxWorkbookSize {
		return fmt.Errorf("file size (%.2f MB) exceeds the %d MB limit",
			float64(fileHeader.Size)/1024/1024, MaxWorkbookSize>>20)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("cannot read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cannot read file")
	}

	if mimeType := http.DetectContentType(buffer[:n]); mimeType != workbookMimeType {
		return fmt.Errorf("file is not an .xlsx workbook (detected %s)", mimeType)
	}
	return nil
}
