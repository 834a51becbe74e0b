package catalogo_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlamor75/vestime-api/internal/application/catalogo"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/infrastructure/cloudinary"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// fuenteTablasFake entrega una tabla por pestaña, con fallos selectivos.
// Las pestañas se descargan en paralelo, el registro de llamadas va con lock.
type fuenteTablasFake struct {
	tablas  map[string]entity.Tabla
	fallaEn string

	mu       sync.Mutex
	llamadas []string
}

func (f *fuenteTablasFake) ObtenerTabla(_ context.Context, _, nombre string) (entity.Tabla, error) {
	f.mu.Lock()
	f.llamadas = append(f.llamadas, nombre)
	f.mu.Unlock()
	if nombre == f.fallaEn {
		return entity.Tabla{}, errors.New("hoja no disponible")
	}
	return f.tablas[nombre], nil
}

var cfgServicio = config.SheetsConfig{
	InventarioID:     "hoja-inventario",
	InventarioNombre: "inventario",
	TallasNombre:     "tallas",
}

func nuevoServicio(fuente *fuenteTablasFake) *catalogo.Servicio {
	return catalogo.NewServicio(fuente, cloudinary.NewIndiceVacio(), cfgServicio, logger.Nop()).
		WithExisteLocal(catalogo.SinImagenesLocales)
}

func TestObtenerCatalogoCompleto_DescargaAmbasPestanas(t *testing.T) {
	fuente := &fuenteTablasFake{tablas: map[string]entity.Tabla{
		"inventario": tabla(
			encabezadoInv,
			[]string{"1", "HB1", "Hombre", "M", "Único", "Camiseta negra"},
		),
		"tallas": tabla(
			[]string{"sexo", "talla", "hombro", "pecho", "manga", "largo"},
			[]string{"Hombre", "M", "47", "100", "20", "70"},
		),
	}}

	productos, tallas := nuevoServicio(fuente).ObtenerCatalogoCompleto(context.Background())

	require.Len(t, productos, 1)
	assert.Equal(t, "HB1", productos[0].Referencia)
	require.Len(t, tallas, 1)
	assert.ElementsMatch(t, []string{"inventario", "tallas"}, fuente.llamadas)
}

func TestObtenerCatalogoCompleto_PestanaCaidaDegradaAParcial(t *testing.T) {
	fuente := &fuenteTablasFake{
		tablas: map[string]entity.Tabla{
			"inventario": tabla(
				encabezadoInv,
				[]string{"1", "HB1", "Hombre", "M", "Único", "Camiseta negra"},
			),
		},
		fallaEn: "tallas",
	}

	productos, tallas := nuevoServicio(fuente).ObtenerCatalogoCompleto(context.Background())

	require.Len(t, productos, 1, "el inventario sobrevive a la caída de la pestaña de tallas")
	assert.Empty(t, tallas)
}

func TestObtenerCatalogoCompleto_FalloTotalDevuelveCatalogoVacio(t *testing.T) {
	fuente := &fuenteTablasFake{fallaEn: "inventario"}

	productos, tallas := nuevoServicio(fuente).ObtenerCatalogoCompleto(context.Background())

	assert.Empty(t, productos, "el fallo de descarga nunca sube como error")
	assert.Empty(t, tallas)
}

func TestObtenerTallas_AgrupaPorSexo(t *testing.T) {
	fuente := &fuenteTablasFake{tablas: map[string]entity.Tabla{
		"tallas": tabla(
			[]string{"sexo", "talla"},
			[]string{"Hombre", "M"},
			[]string{"Mujer", "S"},
		),
	}}

	grupos := nuevoServicio(fuente).ObtenerTallas(context.Background())

	require.Len(t, grupos, 2)
	assert.Len(t, grupos["hombre"], 1)
	assert.Len(t, grupos["mujer"], 1)
}
