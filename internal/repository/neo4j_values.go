package repository

import (
	"encoding/base64"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/mesh-intelligence/gcue/internal/document"
)

// recordToValue turns a record into an object keyed by column name.
func recordToValue(record *neo4j.Record) any {
	row := make(map[string]any, len(record.Keys))
	for i, key := range record.Keys {
		if i < len(record.Values) {
			row[key] = toValue(record.Values[i])
		} else {
			row[key] = nil
		}
	}
	return row
}

// toValue converts a value returned by the driver into a canonical value.
// Graph entities become objects, temporal values ISO-8601 strings.
func toValue(v any) any {
	switch x := v.(type) {
	case []any:
		arr := make([]any, len(x))
		for i, item := range x {
			arr[i] = toValue(item)
		}
		return arr
	case map[string]any:
		obj := make(map[string]any, len(x))
		for key, item := range x {
			obj[key] = toValue(item)
		}
		return obj
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	case dbtype.Node:
		return nodeValue(x)
	case dbtype.Relationship:
		return relationshipValue(x)
	case dbtype.Path:
		nodes := make([]any, len(x.Nodes))
		for i, n := range x.Nodes {
			nodes[i] = nodeValue(n)
		}
		rels := make([]any, len(x.Relationships))
		for i, r := range x.Relationships {
			rels[i] = relationshipValue(r)
		}
		return map[string]any{"nodes": nodes, "relationships": rels}
	case dbtype.Point2D:
		return map[string]any{"srid": uint64(x.SpatialRefId), "x": x.X, "y": x.Y}
	case dbtype.Point3D:
		return map[string]any{"srid": uint64(x.SpatialRefId), "x": x.X, "y": x.Y, "z": x.Z}
	case dbtype.Date:
		return time.Time(x).Format("2006-01-02")
	case dbtype.LocalTime:
		return time.Time(x).Format("15:04:05.999999999")
	case dbtype.LocalDateTime:
		return time.Time(x).Format("2006-01-02T15:04:05.999999999")
	case dbtype.Time:
		return time.Time(x).Format("15:04:05.999999999Z07:00")
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return document.Normalize(x)
	}
}

func nodeValue(n dbtype.Node) map[string]any {
	labels := make([]any, len(n.Labels))
	for i, l := range n.Labels {
		labels[i] = l
	}
	return map[string]any{
		"element_id": n.ElementId,
		"labels":     labels,
		"properties": toValue(n.Props),
	}
}

func relationshipValue(r dbtype.Relationship) map[string]any {
	return map[string]any{
		"element_id":       r.ElementId,
		"type":             r.Type,
		"start_element_id": r.StartElementId,
		"end_element_id":   r.EndElementId,
		"properties":       toValue(r.Props),
	}
}
