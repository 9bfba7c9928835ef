package dto

// LayersRequest - параметры выборки слоёв и объектов карты
type LayersRequest struct {
	Filter string `query:"filter" validate:"omitempty,max=64"`
	BBox   string `query:"bbox" validate:"omitempty,max=128"`
}

// ExportRequest - параметры экспорта карты в файл
type ExportRequest struct {
	Filter string `validate:"omitempty,max=64"`
	Out    string `validate:"required"`
}
