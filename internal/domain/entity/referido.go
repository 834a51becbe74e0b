package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Referido un distribuidor afiliado leído de la hoja de referidos.
// Codigo se asume único entre registros activos; en búsquedas gana el primero.
type Referido struct {
	Item      string `json:"item"`
	Codigo    string `json:"codigo"`
	WhatsApp  string `json:"whatsapp"`
	Nombre    string `json:"nombre"`
	Comision  string `json:"comision"`
	Activo    bool   `json:"activo"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// EsActivo interpreta la columna "activo" de la hoja: solo "SI"
// (sin distinguir mayúsculas) habilita al referido.
func EsActivo(celda string) bool {
	return strings.EqualFold(strings.TrimSpace(celda), "SI")
}

// ComisionPorcentaje devuelve la comisión como decimal. Acepta valores
// de hoja tipo "10", "10%" o "10.5"; si no es numérico devuelve cero.
func (r Referido) ComisionPorcentaje() decimal.Decimal {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r.Comision), "%"))
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ReferidoGuardado un referido persistido en el slot de almacenamiento
// con su fecha de expiración. Existe a lo sumo uno por perfil; el slot
// se sobrescribe en cada resolución exitosa.
type ReferidoGuardado struct {
	Referido
	// ExpiraEn epoch en milisegundos. Pasada esta marca el registro
	// se ignora y se elimina físicamente en la siguiente lectura.
	ExpiraEn int64 `json:"expiry"`
}

// Vigente indica si el registro sigue activo en el instante dado.
// La frontera es estricta: expiry == ahora ya cuenta como expirado.
func (g ReferidoGuardado) Vigente(ahora time.Time) bool {
	return ahora.UnixMilli() < g.ExpiraEn
}
