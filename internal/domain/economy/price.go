package economy

import "math"

// NextPrice is floor(price*1.5). Written as price + price/2 so it only
// overflows once the result itself exceeds int64.
func NextPrice(price int64) int64 {
	return price + price/2
}

// PriceAfter applies NextPrice count times starting from basePrice. Rounding
// happens at every step, so this is not basePrice*1.5^count. The result
// saturates at math.MaxInt64 instead of overflowing.
func PriceAfter(basePrice, count int64) int64 {
	price := basePrice
	for i := int64(0); i < count; i++ {
		if price > math.MaxInt64-price/2 {
			return math.MaxInt64
		}
		price = NextPrice(price)
	}
	return price
}
