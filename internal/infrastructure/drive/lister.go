package drive

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/vlamor75/vestime-api/internal/domain"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
)

// mimeImagen tipos de archivo que cuentan como imagen de producto.
var mimeImagen = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Lister fuente legada de imágenes: carpetas de Google Drive. Se conserva
// para el generador de catálogo (--fuente drive); el almacén actual es
// Cloudinary.
type Lister struct {
	svc *drive.Service
}

// NewLister autentica contra Drive con una cuenta de servicio.
func NewLister(ctx context.Context, credencialesPath string) (*Lister, error) {
	if credencialesPath == "" {
		return nil, domain.ErrConfig
	}
	svc, err := drive.NewService(ctx, option.WithCredentialsFile(credencialesPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return &Lister{svc: svc}, nil
}

// ListarCarpeta lista las imágenes de una carpeta de Drive, agotando la
// paginación por pageToken. El prefijo aquí es el ID de la carpeta.
func (l *Lister) ListarCarpeta(ctx context.Context, folderID string) ([]entity.ImagenAsset, error) {
	consulta := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var archivos []*drive.File
	pageToken := ""
	for {
		llamada := l.svc.Files.List().
			Context(ctx).
			Q(consulta).
			Fields("nextPageToken, files(id, name, mimeType)")
		if pageToken != "" {
			llamada = llamada.PageToken(pageToken)
		}

		r, err := llamada.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: listar carpeta drive: %v", domain.ErrFetch, err)
		}

		archivos = append(archivos, r.Files...)
		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	var assets []entity.ImagenAsset
	for _, f := range archivos {
		if !mimeImagen[strings.ToLower(f.MimeType)] {
			continue
		}
		assets = append(assets, entity.ImagenAsset{
			Original:   f.Name,
			Cloudinary: fmt.Sprintf("https://drive.google.com/uc?id=%s", f.Id),
			PublicID:   f.Id,
		})
	}
	return assets, nil
}
