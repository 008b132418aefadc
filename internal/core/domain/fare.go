package domain

import "fmt"

// FarePolicy computes fares from travelled distance, line surcharge and rider age.
//
// Up to BaseDistance the fare is BaseFare. Between BaseDistance and MidDistance
// every started MidUnit adds UnitFare. Beyond MidDistance every started
// LongUnit adds UnitFare.
type FarePolicy struct {
	BaseFare     int
	BaseDistance int
	MidDistance  int
	MidUnit      int
	LongUnit     int
	UnitFare     int

	// Deduction is subtracted before applying a youth discount.
	Deduction int
}

// DefaultFarePolicy returns the standard metropolitan fare table.
func DefaultFarePolicy() FarePolicy {
	return FarePolicy{
		BaseFare:     1250,
		BaseDistance: 10,
		MidDistance:  50,
		MidUnit:      5,
		LongUnit:     8,
		UnitFare:     100,
		Deduction:    350,
	}
}

// Validate checks the policy is internally consistent.
func (p FarePolicy) Validate() error {
	switch {
	case p.BaseFare < 0 || p.UnitFare < 0 || p.Deduction < 0:
		return fmt.Errorf("%w: fare amounts must not be negative", ErrInvalidInput)
	case p.BaseDistance < 0 || p.MidDistance < p.BaseDistance:
		return fmt.Errorf("%w: fare distances must satisfy 0 <= base <= mid", ErrInvalidInput)
	case p.MidUnit <= 0 || p.LongUnit <= 0:
		return fmt.Errorf("%w: fare units must be positive", ErrInvalidInput)
	}
	return nil
}

// DistanceFare returns the fare for the distance alone.
func (p FarePolicy) DistanceFare(distance int) int {
	fare := p.BaseFare
	if distance <= p.BaseDistance {
		return fare
	}

	mid := min(distance, p.MidDistance) - p.BaseDistance
	fare += ceilDiv(mid, p.MidUnit) * p.UnitFare
	if distance <= p.MidDistance {
		return fare
	}

	fare += ceilDiv(distance-p.MidDistance, p.LongUnit) * p.UnitFare
	return fare
}

// Fare returns the final fare: distance fare plus surcharge, then the age discount.
func (p FarePolicy) Fare(distance, surcharge, age int) int {
	fare := p.DistanceFare(distance) + surcharge
	return AgeGroupOf(age).Discount(fare, p.Deduction)
}

func ceilDiv(n, unit int) int {
	if n <= 0 {
		return 0
	}
	return (n + unit - 1) / unit
}

// AgeGroup classifies riders for fare discounts.
type AgeGroup string

// Available age groups.
const (
	AgeGroupAdult    AgeGroup = "adult"
	AgeGroupChild    AgeGroup = "child"
	AgeGroupTeenager AgeGroup = "teenager"
)

// AgeGroupOf returns the group for an age in years. Unknown (zero) is adult.
func AgeGroupOf(age int) AgeGroup {
	switch {
	case age >= 6 && age < 13:
		return AgeGroupChild
	case age >= 13 && age < 19:
		return AgeGroupTeenager
	default:
		return AgeGroupAdult
	}
}

// Discount applies the group's discount to a fare.
func (g AgeGroup) Discount(fare, deduction int) int {
	switch g {
	case AgeGroupChild:
		return max(fare-deduction, 0) * 50 / 100
	case AgeGroupTeenager:
		return max(fare-deduction, 0) * 80 / 100
	default:
		return fare
	}
}

// String returns the string representation.
func (g AgeGroup) String() string {
	return string(g)
}
