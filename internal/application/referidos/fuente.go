package referidos

import (
	"context"
	"strings"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/pkg/config"
)

// Fuente resuelve referidos contra la hoja publicada. Implementa
// repository.BuscadorReferidos sobre cualquier FuenteTablas.
type Fuente struct {
	tablas repository.FuenteTablas
	cfg    config.SheetsConfig
}

// NewFuente construye la fuente de referidos.
func NewFuente(tablas repository.FuenteTablas, cfg config.SheetsConfig) *Fuente {
	return &Fuente{tablas: tablas, cfg: cfg}
}

// ObtenerReferidos descarga y parsea la hoja de referidos completa.
func (f *Fuente) ObtenerReferidos(ctx context.Context) ([]entity.Referido, error) {
	tabla, err := f.tablas.ObtenerTabla(ctx, f.cfg.ReferidosID, f.cfg.ReferidosNombre)
	if err != nil {
		return nil, err
	}
	return ParseReferidos(tabla), nil
}

// BuscarReferido busca un código entre los referidos activos, sin
// distinguir mayúsculas; gana la primera coincidencia. Devuelve
// (nil, nil) si el código no existe.
func (f *Fuente) BuscarReferido(ctx context.Context, codigo string) (*entity.Referido, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, nil
	}

	referidos, err := f.ObtenerReferidos(ctx)
	if err != nil {
		return nil, err
	}

	for i := range referidos {
		if strings.EqualFold(referidos[i].Codigo, codigo) {
			return &referidos[i], nil
		}
	}
	return nil, nil
}
