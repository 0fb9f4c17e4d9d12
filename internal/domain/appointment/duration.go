package appointment

// DefaultServiceDuration applies to any service key missing from the table.
const DefaultServiceDuration = 30

var serviceDurations = map[string]int{
	"corte-hombre":     60,
	"arreglo-barba":    60,
	"tinte":            60,
	"Afeitado":         30,
	"Corte + Afeitado": 60,
}

// DurationOf returns the duration in minutes of a service key.
func DurationOf(service string) int {
	if d, ok := serviceDurations[service]; ok {
		return d
	}
	return DefaultServiceDuration
}
