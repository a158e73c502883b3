package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"inventory-system/config"
)

// ValidateFile проверяет размер и MIME-тип файла по содержимому.
// contextName - ключ из config.UploadContexts.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("contexto de upload desconhecido: %s", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("tamanho do arquivo (%.2f MB) excede o limite de %d MB", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	if len(rules.AllowedMimeTypes) == 0 {
		return nil
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("erro ao ler arquivo")
	}
	// Курсор обязательно возвращаем в начало.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("erro ao processar arquivo")
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("formato de arquivo não permitido: %s", mimeType)
	}
	return nil
}
