package seeders

import "inventory-system/internal/dto"

// equipmentsData - стартовый набор оборудования для стенда.
var equipmentsData = []dto.CreateEquipmentDTO{
	{NumeroPatrimonio: "PAT-001", NumeroSerie: "SN-DL-5420-01", Marca: "Dell", Modelo: "Latitude 5420", TipoEquipamento: "Notebook", DepartamentoAtual: "TI"},
	{NumeroPatrimonio: "PAT-002", NumeroSerie: "SN-HP-440-02", Marca: "HP", Modelo: "ProBook 440", TipoEquipamento: "Notebook", DepartamentoAtual: "TI"},
	{NumeroPatrimonio: "PAT-003", NumeroSerie: "SN-LN-M70-03", Marca: "Lenovo", Modelo: "ThinkCentre M70q", TipoEquipamento: "Desktop", DepartamentoAtual: "Administração"},
	{NumeroPatrimonio: "PAT-004", NumeroSerie: "SN-EP-X49-04", Marca: "Epson", Modelo: "PowerLite X49", TipoEquipamento: "Projetor", DepartamentoAtual: "TI"},
	{NumeroPatrimonio: "PAT-005", NumeroSerie: "SN-LG-24M-05", Marca: "LG", Modelo: "24MK430H", TipoEquipamento: "Monitor", DepartamentoAtual: "Saúde"},
	{NumeroPatrimonio: "PAT-006", NumeroSerie: "SN-SS-A8-06", Marca: "Samsung", Modelo: "Galaxy Tab A8", TipoEquipamento: "Tablet", DepartamentoAtual: "Educação", Status: "Manutenção"},
}
