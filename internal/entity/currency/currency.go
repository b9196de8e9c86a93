package currency

const (
	USD = "USD"
	INR = "INR"
	EUR = "EUR"
	JPY = "JPY"
	GBP = "GBP"
	CAD = "CAD"
	AUD = "AUD"
	CNY = "CNY"
)

var Supported = []string{USD, INR, EUR, JPY, GBP, CAD, AUD, CNY}

func IsSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}
