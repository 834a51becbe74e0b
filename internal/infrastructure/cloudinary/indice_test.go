package cloudinary_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
	"github.com/vlamor75/vestime-api/internal/infrastructure/cloudinary"
	"github.com/vlamor75/vestime-api/pkg/logger"
)

func asset(original, url string) entity.ImagenAsset {
	return entity.ImagenAsset{Original: original, Cloudinary: url, PublicID: "vestime/" + original}
}

func TestBuscarURL_NormalizaLaReferencia(t *testing.T) {
	indice := cloudinary.NewIndice(map[string][]entity.ImagenAsset{
		entity.CarpetaPremium: {asset("HB1.JPG", "https://res.cloudinary.com/demo/hb1.webp")},
	})

	casos := []string{"hb1", "HB1", "hb1.jpg", "HB1.PNG", "ruta/anidada/hb1.webp"}
	for _, ref := range casos {
		url, ok := indice.BuscarURL(ref, entity.CategoriaHombrePremium)
		require.True(t, ok, "referencia %q", ref)
		assert.Equal(t, "https://res.cloudinary.com/demo/hb1.webp", url)
	}
}

func TestBuscarURL_CarpetaDeLaCategoriaPrimero(t *testing.T) {
	indice := cloudinary.NewIndice(map[string][]entity.ImagenAsset{
		entity.CarpetaPremium: {asset("hb1", "https://res.cloudinary.com/demo/premium/hb1.webp")},
		entity.CarpetaRoot:    {asset("hb1", "https://res.cloudinary.com/demo/raiz/hb1.webp")},
	})

	url, ok := indice.BuscarURL("hb1", entity.CategoriaHombrePremium)
	require.True(t, ok)
	assert.Equal(t, "https://res.cloudinary.com/demo/premium/hb1.webp", url, "la carpeta de la categoría tiene prioridad sobre la raíz")
}

func TestBuscarURL_CaeAlBucketRaiz(t *testing.T) {
	indice := cloudinary.NewIndice(map[string][]entity.ImagenAsset{
		entity.CarpetaRoot: {asset("mb7", "https://res.cloudinary.com/demo/raiz/mb7.webp")},
	})

	url, ok := indice.BuscarURL("MB7", entity.CategoriaMujerBasic)
	require.True(t, ok)
	assert.Equal(t, "https://res.cloudinary.com/demo/raiz/mb7.webp", url)
}

func TestBuscarURL_SinCoincidenciaNiReferencia(t *testing.T) {
	indice := cloudinary.NewIndiceVacio()

	_, ok := indice.BuscarURL("hb1", entity.CategoriaHombrePremium)
	assert.False(t, ok)

	_, ok = indice.BuscarURL("   ", entity.CategoriaHombrePremium)
	assert.False(t, ok, "una referencia en blanco nunca coincide")
}

func TestCargarIndice_DescargaElArtefacto(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+cloudinary.NombreArtefactoIndice, r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("v"), "la descarga lleva parámetro anti-cache")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"premium":[{"original":"hb1","cloudinary":"https://res.cloudinary.com/demo/hb1.webp","publicId":"vestime/premium/hb1"}]}`))
	}))
	defer servidor.Close()

	indice := cloudinary.CargarIndice(servidor.Client(), servidor.URL, logger.Nop())

	url, ok := indice.BuscarURL("hb1", entity.CategoriaHombrePremium)
	require.True(t, ok)
	assert.Equal(t, "https://res.cloudinary.com/demo/hb1.webp", url)
}

func TestCargarIndice_FalloDevuelveIndiceVacio(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer servidor.Close()

	indice := cloudinary.CargarIndice(servidor.Client(), servidor.URL, logger.Nop())
	require.NotNil(t, indice, "el fallo de descarga nunca llega al caller")

	_, ok := indice.BuscarURL("hb1", entity.CategoriaHombrePremium)
	assert.False(t, ok)
}

func TestCargarIndice_JSONCorruptoDevuelveIndiceVacio(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{corrupto"))
	}))
	defer servidor.Close()

	indice := cloudinary.CargarIndice(servidor.Client(), servidor.URL, logger.Nop())
	require.NotNil(t, indice)

	_, ok := indice.BuscarURL("hb1", entity.CategoriaHombrePremium)
	assert.False(t, ok)
}
