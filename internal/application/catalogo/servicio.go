package catalogo

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// Servicio orquesta el armado del catálogo: descarga las pestañas de
// inventario y tallas en paralelo, espera a que ambas resuelvan y
// normaliza. Los fallos de descarga no suben al caller: la capa de
// presentación solo ve listas vacías o el último snapshot bueno.
type Servicio struct {
	tablas      repository.FuenteTablas
	indice      repository.IndiceImagenes
	cfg         config.SheetsConfig
	existeLocal ExisteLocal
	log         *logger.Logger
}

// NewServicio construye el servicio de catálogo. El verificador de
// imágenes locales consulta el disco; los tests inyectan uno propio
// con WithExisteLocal.
func NewServicio(tablas repository.FuenteTablas, indice repository.IndiceImagenes, cfg config.SheetsConfig, log *logger.Logger) *Servicio {
	return &Servicio{
		tablas: tablas,
		indice: indice,
		cfg:    cfg,
		existeLocal: func(ruta string) bool {
			_, err := os.Stat(ruta)
			return err == nil
		},
		log: log,
	}
}

// WithExisteLocal reemplaza el verificador de imágenes locales.
func (s *Servicio) WithExisteLocal(fn ExisteLocal) *Servicio {
	s.existeLocal = fn
	return s
}

// ObtenerCatalogoCompleto descarga ambas pestañas concurrentemente (la
// normalización es la barrera de sincronización) y devuelve productos y
// guía de tallas.
func (s *Servicio) ObtenerCatalogoCompleto(ctx context.Context) ([]entity.Producto, map[string]entity.Talla) {
	var tablaInv, tablaTallas entity.Tabla

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tablaInv = s.obtenerTabla(gctx, s.cfg.InventarioNombre)
		return nil
	})
	g.Go(func() error {
		tablaTallas = s.obtenerTabla(gctx, s.cfg.TallasNombre)
		return nil
	})
	_ = g.Wait() // las descargas degradan internamente, nunca devuelven error

	return ConstruirCatalogo(tablaInv, tablaTallas, s.indice, s.existeLocal)
}

// ObtenerTallas devuelve la guía de tallas agrupada por sexo.
func (s *Servicio) ObtenerTallas(ctx context.Context) map[string][]entity.Talla {
	tabla := s.obtenerTabla(ctx, s.cfg.TallasNombre)
	return TallasAgrupadas(ParseTallas(tabla))
}

// obtenerTabla descarga una pestaña de la hoja de inventario degradando a
// tabla vacía ante fallo (la fuente ya sirvió cache vencido si lo había).
func (s *Servicio) obtenerTabla(ctx context.Context, pestana string) entity.Tabla {
	tabla, err := s.tablas.ObtenerTabla(ctx, s.cfg.InventarioID, pestana)
	if err != nil {
		s.log.Warn().Err(err).Str("pestana", pestana).Msg("pestaña no disponible, catálogo parcial")
		return entity.Tabla{}
	}
	return tabla
}
