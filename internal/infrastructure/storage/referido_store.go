package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/vlamor75/vestime-api/internal/domain/entity"
)

// FileStore slot único de referido persistido como archivo JSON, el
// equivalente del localStorage del navegador: una sola llave, se
// sobrescribe completa en cada resolución exitosa. Un archivo corrupto
// se trata como slot vacío y se elimina.
type FileStore struct {
	ruta string
	mu   sync.Mutex
}

// NewFileStore crea el store sobre la ruta dada, creando el directorio
// padre si hace falta.
func NewFileStore(ruta string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(ruta), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio del slot: %w", err)
	}
	return &FileStore{ruta: ruta}, nil
}

// Obtener lee el slot. Slot ausente o corrupto devuelve (nil, nil).
func (s *FileStore) Obtener() (*entity.ReferidoGuardado, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	datos, err := os.ReadFile(s.ruta)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer slot de referido: %w", err)
	}

	var ref entity.ReferidoGuardado
	if err := json.Unmarshal(datos, &ref); err != nil {
		// Slot ilegible: se descarta en vez de propagar el error.
		_ = os.Remove(s.ruta)
		return nil, nil
	}
	return &ref, nil
}

// Guardar sobrescribe el slot de forma atómica (archivo temporal + rename).
func (s *FileStore) Guardar(ref entity.ReferidoGuardado) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	datos, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("serializar referido: %w", err)
	}

	tmp := s.ruta + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, datos, 0o644); err != nil {
		return fmt.Errorf("escribir slot temporal: %w", err)
	}
	if err := os.Rename(tmp, s.ruta); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("reemplazar slot de referido: %w", err)
	}
	return nil
}

// Eliminar vacía el slot. Eliminar un slot ya vacío no es error.
func (s *FileStore) Eliminar() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.ruta)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore slot en memoria para tests y usos efímeros.
type MemoryStore struct {
	mu  sync.Mutex
	ref *entity.ReferidoGuardado
}

// NewMemoryStore crea un slot vacío en memoria.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Obtener devuelve el referido guardado o nil.
func (s *MemoryStore) Obtener() (*entity.ReferidoGuardado, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ref == nil {
		return nil, nil
	}
	copia := *s.ref
	return &copia, nil
}

// Guardar sobrescribe el slot.
func (s *MemoryStore) Guardar(ref entity.ReferidoGuardado) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = &ref
	return nil
}

// Eliminar vacía el slot.
func (s *MemoryStore) Eliminar() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = nil
	return nil
}
