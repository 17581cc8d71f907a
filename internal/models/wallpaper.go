package models

import "time"

// Wallpaper is a gallery entry. Colores, Etiquetas and Imagen hold document
// store ids; they are weak references and may dangle.
type Wallpaper struct {
	Base
	Titulo           *string     `json:"titulo"            gorm:"type:text"`
	Descripcion      *string     `json:"descripcion"       gorm:"type:text"`
	Colores          StringArray `json:"colores"           gorm:"type:text[];not null;default:'{}';index:idx_fondos_colores,type:gin"`
	Etiquetas        StringArray `json:"etiquetas"         gorm:"type:text[];not null;default:'{}';index:idx_fondos_etiquetas,type:gin"`
	Imagen           *string     `json:"imagen"            gorm:"type:text"`
	FechaPublicacion time.Time   `json:"fecha_publicacion" gorm:"autoCreateTime;not null;index"`
	NumeroDescargas  int         `json:"numero_descargas"  gorm:"not null;default:0"`
}

func (Wallpaper) TableName() string { return "fondos" }
