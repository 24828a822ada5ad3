package domain

import "strings"

// Carrier holds static information for one delivery carrier.
type Carrier struct {
	// Code is the Sweet Tracker carrier code, the map key used throughout.
	Code string `json:"code"`
	// Name is the Korean carrier name.
	Name string `json:"name"`
	// NameEN is the English carrier name.
	NameEN string `json:"name_en"`
	// Contact is the customer service phone number.
	Contact string `json:"contact"`
	// Website is the carrier's web site URL.
	Website string `json:"website"`
	// TrackingURL is the carrier's own tracking page.
	TrackingURL string `json:"tracking_url"`
}

// carriers is the static directory of supported Korean carriers,
// keyed by Sweet Tracker code. Loaded once, read-only.
var carriers = map[string]Carrier{
	"04": {
		Code:        "04",
		Name:        "CJ대한통운",
		NameEN:      "CJ Logistics",
		Contact:     "1588-1255",
		Website:     "https://www.cjlogistics.com",
		TrackingURL: "https://www.cjlogistics.com/ko/tool/parcel/tracking",
	},
	"08": {
		Code:        "08",
		Name:        "롯데택배",
		NameEN:      "Lotte Global Logistics",
		Contact:     "1588-2121",
		Website:     "https://www.lotteglogis.com",
		TrackingURL: "https://www.lotteglogis.com/home/reservation/tracking/index",
	},
	"05": {
		Code:        "05",
		Name:        "한진택배",
		NameEN:      "Hanjin Express",
		Contact:     "1588-0011",
		Website:     "https://www.hanjin.com",
		TrackingURL: "https://www.hanjin.com/kor/CMS/DeliveryMgr/WaybillResult.do",
	},
	"01": {
		Code:        "01",
		Name:        "우체국택배",
		NameEN:      "Korea Post",
		Contact:     "1588-1300",
		Website:     "https://www.epost.go.kr",
		TrackingURL: "https://service.epost.go.kr/trace.RetrieveDomRi498Trv.postal",
	},
	"06": {
		Code:        "06",
		Name:        "로젠택배",
		NameEN:      "Logen",
		Contact:     "1588-9988",
		Website:     "https://www.ilogen.com",
		TrackingURL: "https://www.ilogen.com/web/delivery/tracking",
	},
	"11": {
		Code:        "11",
		Name:        "일양로지스",
		NameEN:      "Ilyang Logis",
		Contact:     "1588-0002",
		Website:     "https://www.ilyanglogis.com",
		TrackingURL: "https://www.ilyanglogis.com/functionality/tracking.asp",
	},
	"23": {
		Code:        "23",
		Name:        "경동택배",
		NameEN:      "Kyungdong Express",
		Contact:     "1899-5368",
		Website:     "https://kdexp.com",
		TrackingURL: "https://kdexp.com/service/delivery",
	},
	"46": {
		Code:        "46",
		Name:        "CU편의점택배",
		NameEN:      "CU CVS Delivery",
		Contact:     "1566-1025",
		Website:     "https://www.cupost.co.kr",
		TrackingURL: "https://www.cupost.co.kr/tracking.cupost",
	},
	"24": {
		Code:        "24",
		Name:        "대신택배",
		NameEN:      "Daesin",
		Contact:     "043-222-4582",
		Website:     "https://www.ds3211.com",
		TrackingURL: "https://www.ds3211.com/freight/internalFreightSearch.ht",
	},
	"22": {
		Code:        "22",
		Name:        "대한통운",
		NameEN:      "Korea Express",
		Contact:     "1588-1255",
		Website:     "https://www.cjlogistics.com",
		TrackingURL: "https://www.cjlogistics.com/ko/tool/parcel/tracking",
	},
}

// codeOrder fixes the listing order of the directory.
var codeOrder = []string{"04", "08", "05", "01", "06", "11", "23", "46", "24", "22"}

// Alias maps one lowercase, space-stripped carrier name variant to a code.
type Alias struct {
	Name string
	Code string
}

// Aliases is the ordered alias table for text-level carrier detection.
// Scan order is significant: the first alias contained in the input wins,
// so longer variants come before their substrings.
var Aliases = []Alias{
	{"cj대한통운", "04"},
	{"cj택배", "04"},
	{"대한통운", "04"},
	{"씨제이대한통운", "04"},
	{"롯데택배", "08"},
	{"롯데글로벌로지스", "08"},
	{"롯데", "08"},
	{"한진택배", "05"},
	{"한진", "05"},
	{"우체국", "01"},
	{"우체국택배", "01"},
	{"우편", "01"},
	{"로젠택배", "06"},
	{"로젠", "06"},
	{"일양로지스", "11"},
	{"일양", "11"},
	{"경동택배", "23"},
	{"경동", "23"},
	{"cu택배", "46"},
	{"cu편의점", "46"},
	{"씨유택배", "46"},
	{"대신택배", "24"},
	{"대신", "24"},
}

// aliasIndex supports exact alias lookups.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string, len(Aliases))
	for _, a := range Aliases {
		idx[a.Name] = a.Code
	}
	return idx
}()

// ByCode returns the carrier for a Sweet Tracker code.
func ByCode(code string) (Carrier, bool) {
	c, ok := carriers[code]
	return c, ok
}

// ByName returns the carrier for a name variant (alias lookup,
// lowercased and space-stripped before matching).
func ByName(name string) (Carrier, bool) {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	code, ok := aliasIndex[key]
	if !ok {
		return Carrier{}, false
	}
	return ByCode(code)
}

// All returns every supported carrier in directory order.
func All() []Carrier {
	out := make([]Carrier, 0, len(codeOrder))
	for _, code := range codeOrder {
		out = append(out, carriers[code])
	}
	return out
}

// MajorCodes is the fallback cascade order when the carrier is unknown:
// CJ, Lotte, Hanjin, Korea Post, Logen.
var MajorCodes = []string{"04", "08", "05", "01", "06"}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DetectFromNumber guesses the carrier from the tracking number pattern.
// Pattern matching is heuristic and intentionally incomplete: 12-digit
// numbers not starting with '6' are shared by several carriers and left
// undetected so callers fall back to the auto-detect cascade.
// Rules are an ordered chain; the first satisfied rule wins.
func DetectFromNumber(trackingNumber string) (string, bool) {
	if !isDigits(trackingNumber) {
		return "", false
	}

	// CJ대한통운: starts with 6, 12-13 digits
	if strings.HasPrefix(trackingNumber, "6") && (len(trackingNumber) == 12 || len(trackingNumber) == 13) {
		return "04", true
	}

	// 우체국: 13 digits
	if len(trackingNumber) == 13 {
		return "01", true
	}

	// 로젠택배: 11 digits
	if len(trackingNumber) == 11 {
		return "06", true
	}

	return "", false
}

// ValidNumber reports whether a tracking number looks plausible:
// digits only, 10 to 14 characters (Korean carrier range).
func ValidNumber(trackingNumber string) bool {
	return isDigits(trackingNumber) && len(trackingNumber) >= 10 && len(trackingNumber) <= 14
}
