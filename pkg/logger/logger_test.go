package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vlamor75/vestime-api/pkg/logger"
)

func TestComponente_EtiquetaCadaLinea(t *testing.T) {
	var salida bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Writer: &salida})

	log.Componente("sheets").Warn().Msg("pestaña no disponible")

	assert.Contains(t, salida.String(), `"componente":"sheets"`)
	assert.Contains(t, salida.String(), "pestaña no disponible")
}

func TestComponente_NoContaminaAlPadre(t *testing.T) {
	var salida bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Writer: &salida})

	_ = log.Componente("referidos")
	log.Info().Msg("arranque")

	assert.NotContains(t, salida.String(), "componente", "el sublogger no altera al logger base")
}

func TestNew_RespetaElNivel(t *testing.T) {
	var salida bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "error", Writer: &salida})

	log.Info().Msg("invisible")
	log.Error().Msg("visible")

	assert.NotContains(t, salida.String(), "invisible")
	assert.Contains(t, salida.String(), "visible")
}
