package matching

import "errors"

var ErrInvalidWeights = errors.New("ranking weights must be non-negative and not all zero")

// Weights of the composite score. They are normalised by their sum, so only
// their ratios matter.
type Weights struct {
	Name     float64
	Dosage   float64
	Distance float64
	Quantity float64
}

func DefaultWeights() Weights {
	return Weights{Name: 0.5, Dosage: 0.15, Distance: 0.2, Quantity: 0.1}
}

func (w Weights) Validate() error {
	if w.Name < 0 || w.Dosage < 0 || w.Distance < 0 || w.Quantity < 0 || w.sum() == 0 {
		return ErrInvalidWeights
	}
	return nil
}

func (w Weights) sum() float64 {
	return w.Name + w.Dosage + w.Distance + w.Quantity
}

// composite combines component scores that are each in [0, 1] into [0, 100].
func (w Weights) composite(name, dosage, distance, quantity float64) float64 {
	total := w.Name*name + w.Dosage*dosage + w.Distance*distance + w.Quantity*quantity
	return total / w.sum() * 100
}
