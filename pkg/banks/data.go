package banks

import "jumpa_withdrawal_back/models"

// Paystack account-resolution codes.
var paystackBanks = []models.BankDirectoryEntry{
	{Name: "Access Bank", Code: "044"},
	{Name: "Access Bank (Diamond)", Code: "063"},
	{Name: "Citibank Nigeria", Code: "023"},
	{Name: "Ecobank Nigeria", Code: "050"},
	{Name: "Fidelity Bank", Code: "070"},
	{Name: "First Bank of Nigeria", Code: "011"},
	{Name: "First City Monument Bank", Code: "214"},
	{Name: "Globus Bank", Code: "00103"},
	{Name: "Guaranty Trust Bank", Code: "058"},
	{Name: "Heritage Bank", Code: "030"},
	{Name: "Jaiz Bank", Code: "301"},
	{Name: "Keystone Bank", Code: "082"},
	{Name: "Kuda Bank", Code: "50211"},
	{Name: "Lotus Bank", Code: "303"},
	{Name: "Moniepoint MFB", Code: "50515"},
	{Name: "OPay Digital Services Limited (OPay)", Code: "999992"},
	{Name: "Optimus Bank Limited", Code: "107"},
	{Name: "Paga", Code: "100002"},
	{Name: "PalmPay", Code: "999991"},
	{Name: "Parallex Bank", Code: "104"},
	{Name: "Polaris Bank", Code: "076"},
	{Name: "PremiumTrust Bank", Code: "105"},
	{Name: "Providus Bank", Code: "101"},
	{Name: "Signature Bank Ltd", Code: "106"},
	{Name: "Stanbic IBTC Bank", Code: "221"},
	{Name: "Standard Chartered Bank", Code: "068"},
	{Name: "Sterling Bank", Code: "232"},
	{Name: "Suntrust Bank", Code: "100"},
	{Name: "TAJ Bank", Code: "302"},
	{Name: "Titan Bank", Code: "102"},
	{Name: "Union Bank of Nigeria", Code: "032"},
	{Name: "United Bank For Africa", Code: "033"},
	{Name: "Unity Bank", Code: "215"},
	{Name: "Wema Bank", Code: "035"},
	{Name: "Zenith Bank", Code: "057"},
}

var paystackAliases = map[string]string{
	"gtb":          "Guaranty Trust Bank",
	"gt bank":      "Guaranty Trust Bank",
	"gtbank":       "Guaranty Trust Bank",
	"guaranty":     "Guaranty Trust Bank",
	"uba":          "United Bank For Africa",
	"fcmb":         "First City Monument Bank",
	"stanbic":      "Stanbic IBTC Bank",
	"access":       "Access Bank",
	"zenith":       "Zenith Bank",
	"first bank":   "First Bank of Nigeria",
	"firstbank":    "First Bank of Nigeria",
	"union bank":   "Union Bank of Nigeria",
	"eco bank":     "Ecobank Nigeria",
	"ecobank":      "Ecobank Nigeria",
	"fidelity":     "Fidelity Bank",
	"wema":         "Wema Bank",
	"polaris":      "Polaris Bank",
	"sterling":     "Sterling Bank",
	"providus":     "Providus Bank",
	"unity":        "Unity Bank",
	"jaiz":         "Jaiz Bank",
	"kuda":         "Kuda Bank",
	"opay":         "OPay Digital Services Limited (OPay)",
	"palmpay":      "PalmPay",
	"palm pay":     "PalmPay",
	"moniepoint":   "Moniepoint MFB",
	"monie point":  "Moniepoint MFB",
	"keystone":     "Keystone Bank",
	"titan":        "Titan Bank",
	"titan trust":  "Titan Bank",
	"diamond bank": "Access Bank (Diamond)",
}

// Yara payout-widget codes. They are a different code space from Paystack;
// mobile sub-accounts (AccessMobile, GTBank Mobile, FCMB Easy) are left out
// because substring matching would shadow the parent bank.
var yaraBanks = []models.BankDirectoryEntry{
	{Name: "Opay", Code: "100004"},
	{Name: "Guaranty Trust Bank", Code: "058"},
	{Name: "Access Bank", Code: "044"},
	{Name: "First Bank PLC", Code: "011"},
	{Name: "Zenith Bank PLC", Code: "057"},
	{Name: "United Bank for Africa", Code: "033"},
	{Name: "Union Bank PLC", Code: "032"},
	{Name: "EcoBank PLC", Code: "050"},
	{Name: "Fidelity Bank", Code: "070"},
	{Name: "Stanbic IBTC Bank", Code: "221"},
	{Name: "First City Monument Bank (FCMB)", Code: "214"},
	{Name: "Wema Bank PLC", Code: "035"},
	{Name: "Polaris Bank", Code: "076"},
	{Name: "Keystone Bank", Code: "082"},
	{Name: "Sterling Bank PLC", Code: "232"},
	{Name: "ProvidusBank PLC", Code: "101"},
	{Name: "Kuda", Code: "090267"},
	{Name: "Moniepoint Microfinance Bank", Code: "090405"},
	{Name: "Paga", Code: "327"},
	{Name: "Unity Bank PLC", Code: "215"},
	{Name: "Jaiz Bank", Code: "301"},
	{Name: "Titan Trust Bank", Code: "000025"},
}

var yaraAliases = map[string]string{
	"gt bank":     "Guaranty Trust Bank",
	"gtb":         "Guaranty Trust Bank",
	"gtbank":      "Guaranty Trust Bank",
	"guaranty":    "Guaranty Trust Bank",
	"uba":         "United Bank for Africa",
	"fcmb":        "First City Monument Bank (FCMB)",
	"first bank":  "First Bank PLC",
	"firstbank":   "First Bank PLC",
	"zenith":      "Zenith Bank PLC",
	"access":      "Access Bank",
	"union":       "Union Bank PLC",
	"union bank":  "Union Bank PLC",
	"eco bank":    "EcoBank PLC",
	"ecobank":     "EcoBank PLC",
	"fidelity":    "Fidelity Bank",
	"stanbic":     "Stanbic IBTC Bank",
	"wema":        "Wema Bank PLC",
	"polaris":     "Polaris Bank",
	"keystone":    "Keystone Bank",
	"sterling":    "Sterling Bank PLC",
	"providus":    "ProvidusBank PLC",
	"unity":       "Unity Bank PLC",
	"jaiz":        "Jaiz Bank",
	"titan":       "Titan Trust Bank",
	"moniepoint":  "Moniepoint Microfinance Bank",
	"monie point": "Moniepoint Microfinance Bank",
	"kuda bank":   "Kuda",
	"opay":        "Opay",
}

var (
	PaystackDirectory = NewDirectory("paystack", paystackBanks, paystackAliases)
	YaraDirectory     = NewDirectory("yara", yaraBanks, yaraAliases)
)
