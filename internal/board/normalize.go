package board

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/bfleague/haxfootball-board/internal/geom"
)

// NormalizeElements sanitizes an externally supplied element list. It is the
// single entry point for untrusted data: file imports, clipboard pastes and
// legacy board files all pass through here. Elements that fail a required
// check are dropped silently, so the result may be shorter than the input.
//
// Records with a kind this package does not recognize are passed through
// verbatim as Unknown elements so newer files survive a round trip.
func NormalizeElements(raws []json.RawMessage) []Element {
	out := make([]Element, 0, len(raws))
	for _, raw := range raws {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		kind, _ := fields["kind"].(string)
		var el Element
		switch Kind(kind) {
		case KindPlayer:
			el = normalizePlayer(fields)
		case KindBall:
			el = normalizeBall(fields)
		case KindStraight:
			el = normalizeStraight(fields)
		case KindCurve:
			el = normalizeCurve(fields)
		default:
			id, _ := fields["id"].(string)
			el = &Unknown{kind: Kind(kind), id: id, raw: append(json.RawMessage(nil), raw...)}
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out
}

func normalizePlayer(fields map[string]any) Element {
	team, _ := fields["team"].(string)
	label, _ := fields["label"].(string)
	name, _ := fields["name"].(string)
	return &Player{
		Id:    idOrFresh(fields),
		X:     coerceCoord(fields["x"]),
		Y:     coerceCoord(fields["y"]),
		Team:  NormalizeTeam(team),
		Label: TruncateLabel(label),
		Name:  name,
	}
}

func normalizeBall(fields map[string]any) Element {
	return &Ball{
		Id: idOrFresh(fields),
		X:  coerceCoord(fields["x"]),
		Y:  coerceCoord(fields["y"]),
	}
}

func normalizeStraight(fields map[string]any) Element {
	coords := make([]float64, 4)
	for i, key := range []string{"x1", "y1", "x2", "y2"} {
		v, ok := finiteNumber(fields[key])
		if !ok {
			return nil
		}
		coords[i] = v
	}
	color, _ := fields["color"].(string)
	dashed, _ := fields["dashed"].(bool)
	return &StraightArrow{
		Id:     idOrFresh(fields),
		X1:     coords[0],
		Y1:     coords[1],
		X2:     coords[2],
		Y2:     coords[3],
		Color:  NormalizeArrowColor(color),
		Dashed: dashed,
	}
}

func normalizeCurve(fields map[string]any) Element {
	var pts []geom.Point
	if rawPts, ok := fields["points"].([]any); ok {
		pts = coercePoints(rawPts)
	} else {
		pts = legacyCubicPoints(fields)
	}
	pts = geom.SimplifyPolyline(pts, geom.DefaultSimplifyEpsilon)
	if len(pts) < 2 {
		return nil
	}
	color, _ := fields["color"].(string)
	dashed, _ := fields["dashed"].(bool)
	return &CurveArrow{
		Id:     idOrFresh(fields),
		Points: pts,
		Color:  NormalizeArrowColor(color),
		Dashed: dashed,
	}
}

// coercePoints converts an explicit point list. Coordinates that are not
// numbers coerce to 0; points that end up non-finite are dropped.
func coercePoints(raw []any) []geom.Point {
	pts := make([]geom.Point, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		p := geom.Pt(coerceCoord(obj["x"]), coerceCoord(obj["y"]))
		if !p.IsFinite() {
			continue
		}
		pts = append(pts, p)
	}
	return pts
}

// legacyCubicPoints reconstructs a curve stored in the old 4-point cubic
// control form. All eight coordinates must be present as numbers; otherwise
// the element is discarded (nil return propagates via the <2 point check).
func legacyCubicPoints(fields map[string]any) []geom.Point {
	coords := make([]float64, 8)
	for i, key := range []string{"x1", "y1", "cx1", "cy1", "cx2", "cy2", "x2", "y2"} {
		v, ok := finiteNumber(fields[key])
		if !ok {
			return nil
		}
		coords[i] = v
	}
	return geom.SampleCubicBezier(
		geom.Pt(coords[0], coords[1]),
		geom.Pt(coords[2], coords[3]),
		geom.Pt(coords[4], coords[5]),
		geom.Pt(coords[6], coords[7]),
		geom.DefaultBezierSegments,
	)
}

func idOrFresh(fields map[string]any) string {
	if id, ok := fields["id"].(string); ok && id != "" {
		return id
	}
	return NewID()
}

// coerceCoord converts a JSON value to a coordinate, mapping anything that
// is not a number to 0.
func coerceCoord(v any) float64 {
	n, ok := toNumber(v)
	if !ok {
		return 0
	}
	return n
}

func finiteNumber(v any) (float64, bool) {
	n, ok := toNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
