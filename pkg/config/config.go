package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Sheets     SheetsConfig
	Referidos  ReferidosConfig
	Cloudinary CloudinaryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SheetsConfig hojas públicas de Google Sheets que alimentan el catálogo.
type SheetsConfig struct {
	// BaseURL host del endpoint gviz. Solo se cambia en tests.
	BaseURL string
	// ReferidosID / ReferidosNombre hoja y pestaña de referidos.
	ReferidosID     string
	ReferidosNombre string
	// InventarioID hoja de inventario; contiene las pestañas de
	// inventario y de tallas.
	InventarioID     string
	InventarioNombre string
	TallasNombre     string
	// CacheTTL ventana de frescura del cache de tablas.
	CacheTTL time.Duration
}

// ReferidosConfig comportamiento del sistema de referidos.
type ReferidosConfig struct {
	// WhatsAppPrincipal número de la empresa cuando no hay referido activo.
	WhatsAppPrincipal string
	// MensajeDefault texto del enlace de contacto cuando el botón no trae uno propio.
	MensajeDefault string
	// ExpiracionDias vigencia de un referido resuelto.
	ExpiracionDias int
	// RutaSlot archivo JSON donde se persiste el referido activo.
	RutaSlot string
}

// CloudinaryConfig credenciales y carpetas del almacén de imágenes.
// Las credenciales solo las usa el proxy y el generador de catálogo;
// nunca llegan al cliente.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// IndiceURL base desde donde se sirve cloudinary-urls.json.
	IndiceURL string
	// Carpetas prefijos del almacén por línea de producto.
	CarpetaHombre  string
	CarpetaMujer   string
	CarpetaPremium string
}

// Completa indica si hay credenciales suficientes para la Admin API.
func (c CloudinaryConfig) Completa() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SHEETS_REFERIDOS_ID, CLOUDINARY_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "vestime-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Sheets: SheetsConfig{
			BaseURL:          getString(v, "SHEETS_BASE_URL", "https://docs.google.com/spreadsheets/d"),
			ReferidosID:      getString(v, "SHEETS_REFERIDOS_ID", ""),
			ReferidosNombre:  getString(v, "SHEETS_REFERIDOS_NOMBRE", "Referidos"),
			InventarioID:     getString(v, "SHEETS_INVENTARIO_ID", ""),
			InventarioNombre: getString(v, "SHEETS_INVENTARIO_NOMBRE", "inventario"),
			TallasNombre:     getString(v, "SHEETS_TALLAS_NOMBRE", "tallas"),
			CacheTTL:         time.Duration(getInt(v, "SHEETS_CACHE_TTL_MINUTOS", 5)) * time.Minute,
		},
		Referidos: ReferidosConfig{
			WhatsAppPrincipal: getString(v, "WHATSAPP_PRINCIPAL", "573117167526"),
			MensajeDefault:    getString(v, "MENSAJE_DEFAULT", "Hola! Me interesa información sobre sus camisetas"),
			ExpiracionDias:    getInt(v, "REFERIDO_EXPIRY_DIAS", 7),
			RutaSlot:          getString(v, "REFERIDO_SLOT_PATH", "./data/referido.json"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:      getString(v, "CLOUDINARY_CLOUD_NAME", ""),
			APIKey:         getString(v, "CLOUDINARY_API_KEY", ""),
			APISecret:      getString(v, "CLOUDINARY_API_SECRET", ""),
			IndiceURL:      getString(v, "CLOUDINARY_INDICE_URL", ""),
			CarpetaHombre:  getString(v, "CLOUDINARY_CARPETA_HOMBRE", "vestime/hombre"),
			CarpetaMujer:   getString(v, "CLOUDINARY_CARPETA_MUJER", "vestime/mujer"),
			CarpetaPremium: getString(v, "CLOUDINARY_CARPETA_PREMIUM", "vestime/premium"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
