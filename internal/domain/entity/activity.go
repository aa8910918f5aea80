package entity

// MaxActivities tamaño del feed de actividades; las más antiguas se descartan.
const MaxActivities = 20

// Activity entrada del feed de actividades recientes.
type Activity struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
	Target string `json:"target"`
	Time   string `json:"time"`
	Type   string `json:"type"` // income | expense | neutral
}

// PrependActivity agrega a al inicio del feed y lo recorta a MaxActivities.
func PrependActivity(feed []Activity, a Activity) []Activity {
	out := make([]Activity, 0, len(feed)+1)
	out = append(out, a)
	out = append(out, feed...)
	if len(out) > MaxActivities {
		out = out[:MaxActivities]
	}
	return out
}
