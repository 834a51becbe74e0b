package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vlamor75/vestime-api/internal/domain"
	"github.com/vlamor75/vestime-api/internal/domain/entity"
)

// El endpoint gviz no devuelve JSON puro: envuelve el cuerpo en una
// llamada JSONP de longitud fija.
//
//	/*O_o*/
//	google.visualization.Query.setResponse({...});
//
// El contrato externo es quitar exactamente 47 bytes de prefijo y 2 de
// sufijo. Si Google cambia el envoltorio, el parseo falla y el cliente
// pasa a modo degradado; hay un test fijado a un payload literal.
const (
	prefijoGviz = 47
	sufijoGviz  = 2
)

type gvizRespuesta struct {
	Status string    `json:"status"`
	Table  gvizTabla `json:"table"`
}

type gvizTabla struct {
	Cols []gvizColumna `json:"cols"`
	Rows []gvizFila    `json:"rows"`
}

type gvizColumna struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type gvizFila struct {
	C []*gvizCelda `json:"c"`
}

type gvizCelda struct {
	V interface{} `json:"v"`
	F string      `json:"f"`
}

// quitarEnvoltorioGviz elimina el envoltorio JSONP y deja el JSON interno.
func quitarEnvoltorioGviz(cuerpo []byte) ([]byte, error) {
	if len(cuerpo) < prefijoGviz+sufijoGviz {
		return nil, fmt.Errorf("%w: cuerpo de %d bytes, menor que el envoltorio gviz", domain.ErrParse, len(cuerpo))
	}
	return cuerpo[prefijoGviz : len(cuerpo)-sufijoGviz], nil
}

// parsearRespuestaGviz convierte el cuerpo crudo del endpoint en una Tabla.
func parsearRespuestaGviz(cuerpo []byte) (entity.Tabla, error) {
	interno, err := quitarEnvoltorioGviz(cuerpo)
	if err != nil {
		return entity.Tabla{}, err
	}

	var resp gvizRespuesta
	dec := json.NewDecoder(bytes.NewReader(interno))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return entity.Tabla{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(resp.Table.Rows) == 0 && len(resp.Table.Cols) == 0 {
		return entity.Tabla{}, fmt.Errorf("%w: respuesta sin tabla", domain.ErrParse)
	}

	return mapearTabla(resp.Table), nil
}

func mapearTabla(t gvizTabla) entity.Tabla {
	tabla := entity.Tabla{Filas: make([]entity.Fila, 0, len(t.Rows))}
	for _, fila := range t.Rows {
		celdas := make([]entity.Celda, len(fila.C))
		for i, celda := range fila.C {
			celdas[i] = entity.Celda{
				Valor: valorCelda(celda),
				Tipo:  tipoColumna(t.Cols, i),
			}
		}
		tabla.Filas = append(tabla.Filas, entity.Fila{Celdas: celdas})
	}
	return tabla
}

// valorCelda normaliza el campo v: celdas ausentes o nulas quedan en "".
func valorCelda(c *gvizCelda) string {
	if c == nil || c.V == nil {
		return ""
	}
	switch v := c.V.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func tipoColumna(cols []gvizColumna, i int) string {
	if i < len(cols) {
		return cols[i].Type
	}
	return ""
}
