// generar-catalogo construye los dos artefactos estáticos del sitio a
// partir del almacén de imágenes: cloudinary-urls.json (índice carpeta →
// assets) y productos.json (catálogo denormalizado legado).
//
// Uso: go run ./cmd/generar-catalogo [-salida DIR] [-fuente cloudinary|drive]
//
// La fuente drive se conserva como modo legado: lista las dos carpetas
// públicas de Google Drive en lugar de Cloudinary (requiere -credenciales
// y los IDs de carpeta).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/domain/repository"
	"github.com/vlamor75/vestime-api/internal/infrastructure/cloudinary"
	"github.com/vlamor75/vestime-api/internal/infrastructure/drive"
	"github.com/vlamor75/vestime-api/pkg/config"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

// productoArtefacto fila del productos.json legado. item es numérico en
// el artefacto histórico, a diferencia del catálogo servido por la API.
type productoArtefacto struct {
	Item        int    `json:"item"`
	ID          string `json:"id"`
	Referencia  string `json:"referencia"`
	Sexo        string `json:"sexo"`
	Talla       string `json:"talla"`
	Estado      string `json:"estado"`
	Descripcion string `json:"descripcion"`
	Nombre      string `json:"nombre"`
	Categoria   string `json:"categoria"`
	Imagen      string `json:"imagen"`
	Destacado   bool   `json:"destacado"`
}

func main() {
	var (
		salida               = flag.String("salida", ".", "directorio donde escribir los artefactos")
		fuente               = flag.String("fuente", "cloudinary", "almacén de imágenes: cloudinary o drive")
		credenciales         = flag.String("credenciales", "", "ruta de la cuenta de servicio (solo -fuente drive)")
		carpetaHombrePremium = flag.String("drive-hombre-premium", "", "ID de carpeta Drive de hombre-premium (solo -fuente drive)")
		carpetaMujerBasic    = flag.String("drive-mujer-basic", "", "ID de carpeta Drive de mujer-basic (solo -fuente drive)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"}).
		With().Str("corrida", uuid.NewString()).Logger()

	ctx := context.Background()

	var (
		indice    map[string][]entity.ImagenAsset
		productos []productoArtefacto
	)

	switch *fuente {
	case "drive":
		indice, productos, err = generarDesdeDrive(ctx, *credenciales, *carpetaHombrePremium, *carpetaMujerBasic)
	case "cloudinary":
		indice, productos, err = generarDesdeCloudinary(ctx, cfg.Cloudinary)
	default:
		err = fmt.Errorf("fuente desconocida: %q", *fuente)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("generación de artefactos")
	}

	if err := escribirJSON(filepath.Join(*salida, cloudinary.NombreArtefactoIndice), indice); err != nil {
		log.Fatal().Err(err).Msg("escribir índice de imágenes")
	}
	if err := escribirJSON(filepath.Join(*salida, "productos.json"), productos); err != nil {
		log.Fatal().Err(err).Msg("escribir catálogo")
	}

	log.Info().
		Int("productos", len(productos)).
		Int("hombre", len(indice[entity.CarpetaHombre])).
		Int("mujer", len(indice[entity.CarpetaMujer])).
		Int("premium", len(indice[entity.CarpetaPremium])).
		Int("root", len(indice[entity.CarpetaRoot])).
		Msg("artefactos generados")
}

// generarDesdeCloudinary barre la cuenta completa (bucket raíz) y las tres
// carpetas de producto, agotando la paginación por cursor.
func generarDesdeCloudinary(ctx context.Context, cfg config.CloudinaryConfig) (map[string][]entity.ImagenAsset, []productoArtefacto, error) {
	admin, err := cloudinary.NewAdminClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	todas, err := admin.ListarTodo(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listar bucket raíz: %w", err)
	}
	raiz := filtrarRaiz(todas)

	carpetas := map[string]string{
		entity.CarpetaHombre:  cfg.CarpetaHombre,
		entity.CarpetaMujer:   cfg.CarpetaMujer,
		entity.CarpetaPremium: cfg.CarpetaPremium,
	}
	indice := map[string][]entity.ImagenAsset{entity.CarpetaRoot: conExtension(raiz)}
	porCarpeta := make(map[string][]entity.ImagenAsset, len(carpetas))
	for clave, prefijo := range carpetas {
		assets, err := admin.ListarCarpeta(ctx, prefijo)
		if err != nil {
			return nil, nil, fmt.Errorf("listar carpeta %s: %w", prefijo, err)
		}
		porCarpeta[clave] = assets
		indice[clave] = conExtension(assets)
	}

	var productos []productoArtefacto
	item := 1

	// Imágenes sueltas del bucket raíz: línea hombre premium
	for _, a := range raiz {
		productos = append(productos, nuevoProducto(&item, a, "Hombre", "M", "Camiseta Vestime", entity.CategoriaHombrePremium))
	}
	for _, a := range porCarpeta[entity.CarpetaHombre] {
		productos = append(productos, nuevoProducto(&item, a, "Hombre", "M", "Camiseta Vestime", entity.CategoriaHombrePremium))
	}
	for _, a := range porCarpeta[entity.CarpetaPremium] {
		productos = append(productos, nuevoProducto(&item, a, "Hombre", "L", "Camiseta Premium", entity.CategoriaHombrePremium))
	}
	for _, a := range porCarpeta[entity.CarpetaMujer] {
		productos = append(productos, nuevoProducto(&item, a, "Mujer", "M", "Camiseta Vestime", entity.CategoriaMujerBasic))
	}

	return indice, productos, nil
}

// generarDesdeDrive modo legado: los assets salen de las dos carpetas
// públicas de Drive y no existe bucket raíz.
func generarDesdeDrive(ctx context.Context, credenciales, carpetaHombre, carpetaMujer string) (map[string][]entity.ImagenAsset, []productoArtefacto, error) {
	if carpetaHombre == "" || carpetaMujer == "" {
		return nil, nil, fmt.Errorf("la fuente drive requiere -drive-hombre-premium y -drive-mujer-basic")
	}

	lister, err := drive.NewLister(ctx, credenciales)
	if err != nil {
		return nil, nil, err
	}

	var listador repository.ListadorImagenes = lister
	hombre, err := listador.ListarCarpeta(ctx, carpetaHombre)
	if err != nil {
		return nil, nil, err
	}
	mujer, err := listador.ListarCarpeta(ctx, carpetaMujer)
	if err != nil {
		return nil, nil, err
	}

	indice := map[string][]entity.ImagenAsset{
		entity.CarpetaHombre:  hombre,
		entity.CarpetaMujer:   mujer,
		entity.CarpetaPremium: nil,
		entity.CarpetaRoot:    nil,
	}

	var productos []productoArtefacto
	item := 1
	for _, a := range hombre {
		productos = append(productos, nuevoProducto(&item, a, "Hombre", "M", "Camiseta Vestime", entity.CategoriaHombrePremium))
	}
	for _, a := range mujer {
		productos = append(productos, nuevoProducto(&item, a, "Mujer", "M", "Camiseta Vestime", entity.CategoriaMujerBasic))
	}
	return indice, productos, nil
}

func nuevoProducto(item *int, a entity.ImagenAsset, sexo, talla, linea, categoria string) productoArtefacto {
	p := productoArtefacto{
		Item:        *item,
		ID:          a.Original,
		Referencia:  a.Original,
		Sexo:        sexo,
		Talla:       talla,
		Estado:      "Único",
		Descripcion: fmt.Sprintf("%s %s", linea, a.Original),
		Nombre:      fmt.Sprintf("%s %s", linea, a.Original),
		Categoria:   categoria,
		Imagen:      a.Cloudinary,
		Destacado:   true,
	}
	*item++
	return p
}

// filtrarRaiz se queda con los assets sueltos fuera de toda carpeta,
// descartando los ejemplos que Cloudinary precarga en cuentas nuevas.
func filtrarRaiz(assets []entity.ImagenAsset) []entity.ImagenAsset {
	var raiz []entity.ImagenAsset
	for _, a := range assets {
		if strings.Contains(a.PublicID, "/") {
			continue
		}
		if strings.Contains(a.PublicID, "sample") || strings.Contains(a.PublicID, "cld-") {
			continue
		}
		raiz = append(raiz, a)
	}
	return raiz
}

// conExtension completa el nombre original con la extensión de la URL de
// entrega (los public IDs de Cloudinary no la llevan). El índice la
// conserva por fidelidad con el artefacto histórico; la búsqueda la
// quita de todas formas al normalizar.
func conExtension(assets []entity.ImagenAsset) []entity.ImagenAsset {
	salida := make([]entity.ImagenAsset, len(assets))
	for i, a := range assets {
		if ext := path.Ext(a.Cloudinary); ext != "" && path.Ext(a.Original) == "" {
			a.Original += ext
		}
		salida[i] = a
	}
	return salida
}

// escribirJSON serializa con sangría y escribe de forma atómica
// (temporal + rename) para no dejar artefactos a medias.
func escribirJSON(ruta string, v interface{}) error {
	datos, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := ruta + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, datos, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, ruta); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
