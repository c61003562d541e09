package system

import "encoding/json"

const loadNotAvailable = "N/A"

// LoadAverage is the 1, 5 and 15 minute load. It encodes as a three element
// array, or as "N/A" when the platform does not report one.
type LoadAverage struct {
	Values    [3]float64
	Available bool
}

func NewLoadAverage(load1, load5, load15 float64) LoadAverage {
	return LoadAverage{Values: [3]float64{load1, load5, load15}, Available: true}
}

func NotAvailable() LoadAverage {
	return LoadAverage{}
}

func (l LoadAverage) MarshalJSON() ([]byte, error) {
	if !l.Available {
		return json.Marshal(loadNotAvailable)
	}
	return json.Marshal(l.Values)
}

func (l *LoadAverage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = NotAvailable()
		return nil
	}
	var vals [3]float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	*l = NewLoadAverage(vals[0], vals[1], vals[2])
	return nil
}
