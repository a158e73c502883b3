package config

// UploadConfig - правила для одного вида загружаемых файлов.
type UploadConfig struct {
	// Пустой список - тип по содержимому не проверяется
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

const (
	UploadTermo           = "termo"
	UploadEquipmentImport = "equipment_import"
)

var UploadContexts = map[string]UploadConfig{
	UploadTermo: {
		AllowedMimeTypes: []string{"application/pdf"},
		MaxSizeMB:        10,
	},
	// xlsx определяется как zip, старый xls - как octet-stream; расширение проверяет сервис импорта.
	UploadEquipmentImport: {
		MaxSizeMB: 20,
	},
}
