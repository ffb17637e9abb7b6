package groupreservation

import "groupbook/internal/domain/money"

// ComputePrice returns the per-unit price at the given fill level. The
// discount accrues per participant beyond the first and the result never
// drops below floor. An empty reservation has no discount pressure, so zero
// participants yields the base price unchanged.
func ComputePrice(basePrice money.Money, participants int, discountStep, floor money.Money) money.Money {
	if participants <= 1 {
		return basePrice
	}

	discount := discountStep.Mul(int64(participants - 1))
	price := basePrice.Sub(discount)
	if price.LessThan(floor) {
		return floor
	}
	return price
}
