// Package validator registers the custom binding tags used by request
// payloads and query parameters.
package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	monthRegex    = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// iso4217Codes lists the active ISO 4217 currency codes.
const iso4217Codes = `
AED AFN ALL AMD ANG AOA ARS AUD AWG AZN BAM BBD BDT BGN BHD BIF BMD BND BOB BRL
BSD BTN BWP BYN BZD CAD CDF CHF CLP CNY COP CRC CUP CVE CZK DJF DKK DOP DZD EGP
ERN ETB EUR FJD FKP GBP GEL GHS GIP GMD GNF GTQ GYD HKD HNL HTG HUF IDR ILS INR
IQD IRR ISK JMD JOD JPY KES KGS KHR KMF KPW KRW KWD KYD KZT LAK LBP LKR LRD LSL
LYD MAD MDL MGA MKD MMK MNT MOP MRU MUR MVR MWK MXN MYR MZN NAD NGN NIO NOK NPR
NZD OMR PAB PEN PGK PHP PKR PLN PYG QAR RON RSD RUB RWF SAR SBD SCR SDG SEK SGD
SHP SLE SOS SRD SSP STN SVC SYP SZL THB TJS TMT TND TOP TRY TTD TWD TZS UAH UGX
USD UYU UZS VES VND VUV WST XAF XCD XOF XPF YER ZAR ZMW ZWL`

var validCurrencies = func() map[string]bool {
	m := make(map[string]bool)
	for _, code := range strings.Fields(iso4217Codes) {
		m[code] = true
	}
	return m
}()

// oneOf builds a validation func accepting exactly the given values.
func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("month", validateMonth)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("transaction_type", oneOf("income", "expense"))
	_ = v.RegisterValidation("sort_field", oneOf("date", "amount"))
	_ = v.RegisterValidation("sort_order", oneOf("asc", "desc"))
	_ = v.RegisterValidation("analysis_period", oneOf("week", "month", "year"))
	_ = v.RegisterValidation("security_level", oneOf("low", "medium", "high"))
	_ = v.RegisterValidation("date_format", oneOf("YYYY-MM-DD", "DD/MM/YYYY", "MM/DD/YYYY"))
	_ = v.RegisterValidation("time_format", oneOf("24h", "12h"))
	_ = v.RegisterValidation("currency_position", oneOf("before", "after"))
}

// decimalValue exposes decimal amounts to numeric tags such as gte=0.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateMonth(fl validator.FieldLevel) bool {
	return monthRegex.MatchString(fl.Field().String())
}

// validateCalendarDate accepts YYYY-MM-DD or an RFC3339 timestamp.
func validateCalendarDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
