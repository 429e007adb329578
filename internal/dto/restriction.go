package dto

// CreateRestrictionRequest adds a rule to the restriction catalog.
// Field names follow the administrative client contract.
type CreateRestrictionRequest struct {
	Code         string  `json:"codigo" validate:"required"`
	Description  string  `json:"descripcion" validate:"required"`
	Kind         string  `json:"tipo_aplicacion" validate:"required"`
	EntityID1    *string `json:"entidad_id_1"`
	EntityID2    *string `json:"entidad_id_2"`
	NumericParam *int    `json:"valor_parametro" validate:"omitempty,min=0"`
	PeriodID     *string `json:"periodo_aplicable"`
	Active       bool    `json:"esta_activa"`
}

// UpdateRestrictionRequest patches an existing restriction.
type UpdateRestrictionRequest struct {
	Description  *string `json:"descripcion"`
	EntityID1    *string `json:"entidad_id_1"`
	EntityID2    *string `json:"entidad_id_2"`
	NumericParam *int    `json:"valor_parametro" validate:"omitempty,min=0"`
	PeriodID     *string `json:"periodo_aplicable"`
	Active       *bool   `json:"esta_activa"`
}
